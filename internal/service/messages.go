package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

const (
	noDataMessage = "Даних немає"
	alertTemplate = "⏰ Через годину відключення\n%s"
)

// dayTemplate renders one date block. Header uses Telegram Markdown bold.
//
//nolint:gochecknoglobals // it's template
var dayTemplate = template.Must(template.New("day").Parse(`📅 *{{.Date}}*

{{if not .Found}}Даних немає{{else if .AllClear}}Відключень не заплановано{{else if not .Intervals}}Відключень більше немає{{else}}{{range $i, $interval := .Intervals}}{{if $i}}
{{end}}{{$interval}}{{end}}{{end}}`))

type (
	// DayView is the outage data of the configured group for one date.
	// Found is false when the date's announcement has no block for the group.
	DayView struct {
		Date      string
		Found     bool
		Intervals []schedule.Interval
	}

	dayTemplateData struct {
		Date      string
		Found     bool
		AllClear  bool
		Intervals []schedule.Interval
	}
)

// RenderDay renders a single date block. When date equals today intervals that
// already ended at now are dropped.
func RenderDay(day DayView, today string, now schedule.TimeOfDay) (string, error) {
	data := dayTemplateData{
		Date:     day.Date,
		Found:    day.Found,
		AllClear: day.Found && len(day.Intervals) == 0,
	}

	if day.Found {
		data.Intervals = make([]schedule.Interval, 0, len(day.Intervals))
		for _, interval := range day.Intervals {
			if day.Date == today && interval.ElapsedAt(now) {
				continue
			}
			data.Intervals = append(data.Intervals, interval)
		}
	}

	var buf bytes.Buffer
	if err := dayTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute day template: %w", err)
	}
	return buf.String(), nil
}

// RenderSchedule joins the date blocks with a blank line. No blocks at all is "no data".
func RenderSchedule(days []DayView, now time.Time) (string, error) {
	if len(days) == 0 {
		return noDataMessage, nil
	}

	today := schedule.DateKey(now)
	nowTime := schedule.TimeOfDayOf(now)

	blocks := make([]string, 0, len(days))
	for _, day := range days {
		block, err := RenderDay(day, today, nowTime)
		if err != nil {
			return "", fmt.Errorf("render day %s: %w", day.Date, err)
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

func renderAlert(interval schedule.Interval) string {
	return fmt.Sprintf(alertTemplate, interval)
}
