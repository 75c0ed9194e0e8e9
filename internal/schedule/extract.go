package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DateLayout is the date format used in announcements and as Schedules key.
	DateLayout = "02.01.2006"

	defaultPublishedAt = "00:00"

	blockSelector = "p, div, li, tr, h1, h2, h3, h4, h5, h6"
)

var (
	dateRe       = regexp.MustCompile(`Графік погодинних відключень на (\d{2}\.\d{2}\.\d{4})`)
	publishedRe  = regexp.MustCompile(`станом на (\d{2}:\d{2})`)
	groupLabelRe = regexp.MustCompile(`Група \d`)
	outageRe     = regexp.MustCompile(`немає з (.+?)(?:\.|$)`)
)

type (
	// Dated is the announcement published for one calendar date.
	Dated struct {
		Date        string
		PublishedAt string
		Raw         string
	}

	// Schedules maps a date (DateLayout) to the most recently published announcement.
	Schedules map[string]Dated
)

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Latest picks the freshest announcement per date across all menu items.
// Items without a date header are skipped. Items without a publication time count as 00:00.
// On equal publication times the last item seen wins.
func Latest(records []Record) Schedules {
	res := make(Schedules)
	for _, r := range records {
		for _, item := range r.MenuItems {
			d, ok := parseDated(item.RawHTML)
			if !ok {
				continue
			}
			// zero-padded HH:MM compares correctly as strings
			if current, exists := res[d.Date]; exists && d.PublishedAt < current.PublishedAt {
				continue
			}
			res[d.Date] = d
		}
	}
	return res
}

func (s Schedules) On(t time.Time) (Dated, bool) {
	d, ok := s[DateKey(t)]
	return d, ok
}

// Intervals returns the outage intervals announced for group, e.g. "5.2".
// A missing group block is ErrNotFound; a block without outages is an empty slice.
func (d Dated) Intervals(group string) ([]Interval, error) {
	label := "Група " + group + "."
	for _, line := range textLines(d.Raw) {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}

		block := line[idx+len(label):]
		if next := groupLabelRe.FindStringIndex(block); next != nil {
			block = block[:next[0]]
		}

		m := outageRe.FindStringSubmatch(block)
		if m == nil {
			return []Interval{}, nil
		}

		res, err := parseIntervals(m[1])
		if err != nil {
			return nil, fmt.Errorf("group %s on %s: %w", group, d.Date, err)
		}
		return res, nil
	}

	return nil, fmt.Errorf("%w: group %s on %s", ErrNotFound, group, d.Date)
}

func parseDated(raw string) (Dated, bool) {
	text := strings.Join(textLines(raw), "\n")

	dm := dateRe.FindStringSubmatch(text)
	if dm == nil {
		return Dated{}, false
	}

	publishedAt := defaultPublishedAt
	if pm := publishedRe.FindStringSubmatch(text); pm != nil {
		publishedAt = pm[1]
	}

	return Dated{
		Date:        dm[1],
		PublishedAt: publishedAt,
		Raw:         raw,
	}, true
}

// textLines flattens an HTML fragment to its non-empty text lines with collapsed whitespace.
func textLines(raw string) []string {
	text := raw
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err == nil {
		doc.Find("br").ReplaceWithHtml("\n")
		doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml("\n")
		})
		text = doc.Text()
	}

	res := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			res = append(res, line)
		}
	}
	return res
}
