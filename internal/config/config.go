package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultEnvFile = ".env"

type Config struct {
	Dev bool `envconfig:"DEV" default:"false"`

	Group        string        `envconfig:"GROUP" default:"5.2"`
	ScheduleURL  string        `envconfig:"SCHEDULE_URL" default:"https://api.loe.lviv.ua/api/menus?page=1&type=photo-grafic"`
	UserAgent    string        `envconfig:"USER_AGENT" default:"Mozilla/5.0"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`

	NotifyUpcomingInterval time.Duration `envconfig:"NOTIFY_UPCOMING_INTERVAL" default:"1m"`
	AlertLead              time.Duration `envconfig:"ALERT_LEAD" default:"1h"`
	AlertWindow            time.Duration `envconfig:"ALERT_WINDOW" default:"1m"`
	AlertsTTL              time.Duration `envconfig:"ALERTS_TTL" default:"24h"`
	CleanupInterval        time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`

	TelegramToken         string `envconfig:"TELEGRAM_TOKEN"`
	TelegramTokenSSMParam string `envconfig:"TELEGRAM_TOKEN_SSM_PARAM" default:"/loe-notifier-bot/prod/telegram-token"`

	CalendarEnabled             bool          `envconfig:"CALENDAR_ENABLED" default:"false"`
	CalendarID                  string        `envconfig:"CALENDAR_ID"`
	GoogleCredentialsPath       string        `envconfig:"GOOGLE_CREDENTIALS_PATH"`
	CalendarSyncInterval        time.Duration `envconfig:"CALENDAR_SYNC_INTERVAL" default:"10m"`
	CalendarCleanupInterval     time.Duration `envconfig:"CALENDAR_CLEANUP_INTERVAL" default:"6h"`
	CalendarCleanupLookbackDays int           `envconfig:"CALENDAR_CLEANUP_LOOKBACK_DAYS" default:"7"`
}

// NewConfig reads .env (if present) and the environment. Outside dev mode a missing
// TELEGRAM_TOKEN is loaded from AWS SSM.
func NewConfig(ctx context.Context) (*Config, error) {
	return newConfig(ctx, defaultEnvFile, getSSMToken)
}

func newConfig(ctx context.Context, envFile string, ssmToken func(context.Context, string) (string, error)) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	res := &Config{}
	err := envconfig.Process("", res)
	if err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}

	if res.TelegramToken == "" && !res.Dev {
		res.TelegramToken, err = ssmToken(ctx, res.TelegramTokenSSMParam)
		if err != nil {
			return nil, err
		}
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("telegram token is required"))
	}
	if c.Group == "" {
		errs = append(errs, errors.New("group is required"))
	}
	if c.ScheduleURL == "" {
		errs = append(errs, errors.New("schedule url is required"))
	}

	type namedDuration struct {
		name  string
		value time.Duration
	}
	durations := []namedDuration{
		{"FETCH_TIMEOUT", c.FetchTimeout},
		{"NOTIFY_UPCOMING_INTERVAL", c.NotifyUpcomingInterval},
		{"ALERT_LEAD", c.AlertLead},
		{"ALERT_WINDOW", c.AlertWindow},
		{"ALERTS_TTL", c.AlertsTTL},
		{"CLEANUP_INTERVAL", c.CleanupInterval},
	}
	if c.CalendarEnabled {
		durations = append(durations,
			namedDuration{"CALENDAR_SYNC_INTERVAL", c.CalendarSyncInterval},
			namedDuration{"CALENDAR_CLEANUP_INTERVAL", c.CalendarCleanupInterval},
		)
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.name, d.value))
		}
	}

	if c.CalendarEnabled {
		if c.CalendarID == "" {
			errs = append(errs, errors.New("calendar id is required when calendar is enabled"))
		}
		if c.GoogleCredentialsPath == "" {
			errs = append(errs, errors.New("google credentials path is required when calendar is enabled"))
		}
		if c.CalendarCleanupLookbackDays < 1 {
			errs = append(errs, fmt.Errorf("CALENDAR_CLEANUP_LOOKBACK_DAYS must be positive, got %d", c.CalendarCleanupLookbackDays))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getSSMToken(ctx context.Context, name string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	ssmClient := ssm.NewFromConfig(cfg)

	param, err := ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get SSM token: %w", err)
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return "", errors.New("SSM Token not found")
	}

	return *param.Parameter.Value, nil
}
