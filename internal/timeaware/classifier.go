// Package timeaware classifies loosely formatted Japanese date strings as
// past, current or future relative to a reference instant, and renders them
// back into chat-facing text.
package timeaware

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period is the three-way temporal classification of an event.
type Period string

const (
	PeriodPast    Period = "past"
	PeriodCurrent Period = "current"
	PeriodFuture  Period = "future"
)

// JST is a fixed UTC+9 offset. The service reasons about "today" in Japan
// time without depending on the tz database.
var JST = time.FixedZone("JST", 9*60*60)

// NowJST returns the current instant shifted to JST.
func NowJST() time.Time {
	return time.Now().In(JST)
}

// currentWindowDays bounds the inclusive ±N-day band treated as "current".
// Events within a week of the reference date read as ongoing even when they
// are not literally today.
const currentWindowDays = 7

var (
	yearMonthDayRe = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	yearMonthRe    = regexp.MustCompile(`(\d{4})-(\d{1,2})`)
	monthDayRe     = regexp.MustCompile(`(\d{1,2})-(\d{1,2})`)
)

// genericLayouts are tried after the Japanese-marker forms fail.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"January 2, 2006",
}

// Classifier parses date strings and classifies events against a reference
// instant. The zero value is not usable; construct with NewClassifier.
type Classifier struct {
	now func() time.Time
}

// NewClassifier returns a classifier using the JST wall clock for the
// current-year default of month-day-only dates.
func NewClassifier() *Classifier {
	return &Classifier{now: NowJST}
}

// NewClassifierAt pins the classifier clock, for tests.
func NewClassifierAt(now func() time.Time) *Classifier {
	return &Classifier{now: now}
}

// ParseDate converts a loosely formatted date string into a time.Time in JST.
// Accepted forms, in priority order: year-month-day, year-month (day defaults
// to 1), month-day (year defaults to the current calendar year), then the
// generic layouts. Returns ok=false on total failure; never panics.
func (c *Classifier) ParseDate(text string) (time.Time, bool) {
	clean := normalizeDateString(text)

	if m := yearMonthDayRe.FindStringSubmatch(clean); m != nil {
		return makeDate(m[1], m[2], m[3]), true
	}
	if m := yearMonthRe.FindStringSubmatch(clean); m != nil {
		return makeDate(m[1], m[2], "1"), true
	}
	if m := monthDayRe.FindStringSubmatch(clean); m != nil {
		year := strconv.Itoa(c.now().Year())
		return makeDate(year, m[1], m[2]), true
	}

	trimmed := strings.TrimSpace(text)
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, JST); err == nil {
			return t, true
		}
	}

	log.Printf("[timeaware] failed to parse date: %q", text)
	return time.Time{}, false
}

// normalizeDateString rewrites full-width Japanese date markers into plain
// separators so a single set of patterns can match.
func normalizeDateString(text string) string {
	r := strings.NewReplacer(
		"年", "-",
		"月", "-",
		"日", "",
		"：", ":",
	)
	clean := r.Replace(text)
	return strings.Join(strings.Fields(clean), "")
}

func makeDate(year, month, day string) time.Time {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	// time.Date normalizes out-of-range components the same way the chat
	// frontend's Date constructor did, so "2024年13月" rolls into January.
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, JST)
}

// DetermineTimePeriod classifies a date string against the reference date
// using the whole-day difference between the two midnights. Unparseable
// input defaults to current rather than failing.
func (c *Classifier) DetermineTimePeriod(dateText string, reference time.Time) Period {
	eventDate, ok := c.ParseDate(dateText)
	if !ok {
		return PeriodCurrent
	}

	today := truncateToMidnight(reference)
	eventDay := truncateToMidnight(eventDate)

	days := int(math.Floor(eventDay.Sub(today).Hours() / 24))
	switch {
	case days < -currentWindowDays:
		return PeriodPast
	case days > currentWindowDays:
		return PeriodFuture
	default:
		return PeriodCurrent
	}
}

func truncateToMidnight(t time.Time) time.Time {
	t = t.In(JST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, JST)
}

// IsEventActive reports whether the reference instant falls inside the
// event's [start, end] range, inclusive. The end date defaults to the start
// date for single-day events. Unparseable bounds read as inactive.
func (c *Classifier) IsEventActive(event Event, reference time.Time) bool {
	start, ok := c.ParseDate(event.Date)
	if !ok {
		return false
	}

	end := start
	if event.EndDate != "" {
		end, ok = c.ParseDate(event.EndDate)
		if !ok {
			return false
		}
	}

	return !reference.Before(start) && !reference.After(end)
}

// HasEventEnded reports whether the reference instant is strictly after the
// end of the event's final day (23:59:59.999).
func (c *Classifier) HasEventEnded(event Event, reference time.Time) bool {
	dateText := event.Date
	if event.EndDate != "" {
		dateText = event.EndDate
	}

	end, ok := c.ParseDate(dateText)
	if !ok {
		return false
	}

	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
	return reference.After(endOfDay)
}

// FormatDateForChat re-renders a date string as YYYY年M月D日 with a suffix
// matching the period. Unparseable input is returned unchanged.
func (c *Classifier) FormatDateForChat(dateText string, period Period) string {
	eventDate, ok := c.ParseDate(dateText)
	if !ok {
		return dateText
	}

	base := fmt.Sprintf("%d年%d月%d日", eventDate.Year(), int(eventDate.Month()), eventDate.Day())
	switch period {
	case PeriodPast:
		return base + "（終了済み）"
	case PeriodCurrent:
		return base + "（現在）"
	case PeriodFuture:
		return base + "（予定）"
	default:
		return base
	}
}

// Buckets groups events by temporal classification, preserving input order
// within each group.
type Buckets struct {
	Past    []Event
	Current []Event
	Future  []Event
}

// CategorizeEventsByTime buckets events against the reference instant.
// Each returned event is an annotated copy carrying TimePeriod, IsActive and
// HasEnded; the input slice is left untouched, so recomputing with the same
// reference yields identical results.
func (c *Classifier) CategorizeEventsByTime(events []Event, reference time.Time) Buckets {
	var buckets Buckets

	for _, event := range events {
		event.TimePeriod = c.DetermineTimePeriod(event.Date, reference)
		event.IsActive = c.IsEventActive(event, reference)
		event.HasEnded = c.HasEventEnded(event, reference)

		switch {
		case event.HasEnded || event.TimePeriod == PeriodPast:
			buckets.Past = append(buckets.Past, event)
		case event.TimePeriod == PeriodFuture:
			buckets.Future = append(buckets.Future, event)
		default:
			buckets.Current = append(buckets.Current, event)
		}
	}

	return buckets
}

// GenerateTimeAwarePrompt renders up to three labeled sections (past,
// current, future) listing each event as "<formatted date>: <title>".
// Empty buckets are omitted; if every bucket is empty the result is "".
func (c *Classifier) GenerateTimeAwarePrompt(events []Event, category string, reference time.Time) string {
	buckets := c.CategorizeEventsByTime(events, reference)

	var b strings.Builder
	c.writeEventSection(&b, fmt.Sprintf("【過去の%s（終了済み）】", category), buckets.Past, PeriodPast)
	c.writeEventSection(&b, fmt.Sprintf("【現在の%s（進行中）】", category), buckets.Current, PeriodCurrent)
	c.writeEventSection(&b, fmt.Sprintf("【今後の%s（予定）】", category), buckets.Future, PeriodFuture)
	return b.String()
}

func (c *Classifier) writeEventSection(b *strings.Builder, header string, events []Event, period Period) {
	if len(events) == 0 {
		return
	}

	b.WriteString(header)
	b.WriteString("\n")
	for _, event := range events {
		fmt.Fprintf(b, "- %s: %s\n", c.FormatDateForChat(event.Date, period), event.DisplayTitle())
	}
	b.WriteString("\n")
}
