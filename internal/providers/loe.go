package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Roma7-7-7/loe-notifier/internal/schedule"
)

const (
	acceptHeader = "application/ld+json, application/json"
	maxBodySize  = 5 << 20
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type LOEProvider struct {
	url       string
	userAgent string
	timeout   time.Duration
	client    HTTPClient
	loadPage  func(context.Context, string) ([]byte, error)
}

func NewLOEProvider(url, userAgent string, timeout time.Duration) *LOEProvider {
	return NewLOEProviderWithClient(url, userAgent, timeout, http.DefaultClient)
}

func NewLOEProviderWithClient(url, userAgent string, timeout time.Duration, client HTTPClient) *LOEProvider {
	p := &LOEProvider{
		url:       url,
		userAgent: userAgent,
		timeout:   timeout,
		client:    client,
	}
	p.loadPage = p.load
	return p
}

// Schedules fetches the menus collection and returns the latest announcement per date.
func (p *LOEProvider) Schedules(ctx context.Context) (schedule.Schedules, error) {
	data, err := p.loadPage(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("load schedules page: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: response from %s is not valid JSON", ErrFetch, p.url)
	}

	return schedule.Latest(schedule.Normalize(data)), nil
}

func (p *LOEProvider) load(ctx context.Context, url string) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for url=%s: %w", url, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get url=%s: %w", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get url=%s: status=%s", ErrFetch, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read url=%s: %w", ErrFetch, url, err)
	}

	return body, nil
}
