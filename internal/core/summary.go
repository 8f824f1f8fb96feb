package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekdayLabels are the Monday-first day labels used by every view.
var WeekdayLabels = [7]string{"월", "화", "수", "목", "금", "토", "일"}

// FallbackColor is used for emotions the catalog no longer knows.
const FallbackColor = "#CCCCCC"

// Period selects the records shown on a timeline.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
)

type (
	// DaySlot is one day of a weekly view. Record is nil when nothing was
	// written that day.
	DaySlot struct {
		Label  string
		Date   time.Time
		Record *Record
	}

	// Week is the Monday-start week containing a reference day.
	Week struct {
		Start time.Time
		End   time.Time
		Days  [7]DaySlot
	}

	// MonthView is a month calendar plus the records dated inside it.
	MonthView struct {
		Year     int
		Month    int // 1-12
		Grid     [][7]int
		Records  []Record
		Emotions map[string]string // date -> emotion
		Colors   map[string]string // date -> color
	}

	// EmotionCount is one bar of the emotion distribution.
	EmotionCount struct {
		Emotion string
		Color   string
		Count   int
		Percent float64
	}
)

// Empty reports whether no day of the week has a record.
func (w Week) Empty() bool {
	for _, d := range w.Days {
		if d.Record != nil {
			return false
		}
	}
	return true
}

// Empty reports whether the month has no records.
func (m MonthView) Empty() bool {
	return len(m.Records) == 0
}

// DateOf returns the storage date of a grid day.
func (m MonthView) DateOf(day int) string {
	return fmt.Sprintf("%s%02d", MonthPrefix(m.Year, m.Month), day)
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Weekly builds the seven day slots of the week containing today.
func Weekly(records []Record, today time.Time) Week {
	byDate := indexByDate(records)
	start := StartOfWeek(today)
	w := Week{Start: start, End: start.AddDate(0, 0, 6)}
	for i := range w.Days {
		d := start.AddDate(0, 0, i)
		slot := DaySlot{Label: WeekdayLabels[i], Date: d}
		if r, ok := byDate[FormatDate(d)]; ok {
			rec := r
			slot.Record = &rec
		}
		w.Days[i] = slot
	}
	return w
}

// MonthPrefix is the date prefix shared by every record of a month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// MonthGrid lays the days of a month out in Monday-first weeks. Days outside
// the month are 0.
func MonthGrid(year, month int) [][7]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	weeks := (offset + days + 6) / 7
	grid := make([][7]int, weeks)
	for day := 1; day <= days; day++ {
		cell := offset + day - 1
		grid[cell/7][cell%7] = day
	}
	return grid
}

// Monthly filters records by the month's date prefix and builds its grid.
func Monthly(records []Record, year, month int) MonthView {
	prefix := MonthPrefix(year, month)
	view := MonthView{
		Year:     year,
		Month:    month,
		Grid:     MonthGrid(year, month),
		Emotions: make(map[string]string),
		Colors:   make(map[string]string),
	}
	for _, r := range records {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		view.Records = append(view.Records, r)
		view.Emotions[r.Date] = r.Emotion
		view.Colors[r.Date] = r.Color
	}
	return view
}

// PreviousMonth steps one month back, wrapping January to December.
func PreviousMonth(year, month int) (int, int) {
	month--
	if month == 0 {
		return year - 1, 12
	}
	return year, month
}

// Timeline returns the records of a period in date order.
func Timeline(records []Record, period Period, now time.Time) []Record {
	var out []Record
	switch period {
	case PeriodMonth:
		prefix := MonthPrefix(now.Year(), int(now.Month()))
		for _, r := range records {
			if strings.HasPrefix(r.Date, prefix) {
				out = append(out, r)
			}
		}
	case PeriodWeek:
		start := FormatDate(StartOfWeek(now))
		end := FormatDate(StartOfWeek(now).AddDate(0, 0, 6))
		for _, r := range records {
			if r.Date >= start && r.Date <= end {
				out = append(out, r)
			}
		}
	default:
		out = append(out, records...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Distribution counts records per emotion in first-seen order. colorOf
// supplies the current catalog color.
func Distribution(records []Record, colorOf func(emotion string) (string, bool)) []EmotionCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if _, seen := counts[r.Emotion]; !seen {
			order = append(order, r.Emotion)
		}
		counts[r.Emotion]++
	}

	out := make([]EmotionCount, 0, len(order))
	for _, name := range order {
		color := FallbackColor
		if colorOf != nil {
			if c, ok := colorOf(name); ok {
				color = c
			}
		}
		out = append(out, EmotionCount{
			Emotion: name,
			Color:   color,
			Count:   counts[name],
			Percent: float64(counts[name]) * 100 / float64(len(records)),
		})
	}
	return out
}

// SortRecords orders records by date ascending.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date < records[j].Date })
}

// FindRecord returns the record written on date.
func FindRecord(records []Record, date string) (Record, bool) {
	for _, r := range records {
		if r.Date == date {
			return r, true
		}
	}
	return Record{}, false
}

func indexByDate(records []Record) map[string]Record {
	byDate := make(map[string]Record, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}
	return byDate
}
