package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 0, 0, time.UTC)
}

func TestWeeklyAlwaysSevenSlots(t *testing.T) {
	records := []Record{
		{Date: "2024-01-07", Emotion: "슬픔"}, // previous Sunday
		{Date: "2024-01-08", Emotion: "기쁨"},
		{Date: "2024-01-12", Emotion: "평온"},
		{Date: "2024-01-15", Emotion: "화남"}, // next Monday
	}

	for _, today := range []time.Time{day(2024, 1, 8), day(2024, 1, 10), day(2024, 1, 14)} {
		w := Weekly(records, today)
		if len(w.Days) != 7 {
			t.Fatalf("expected 7 slots, got %d", len(w.Days))
		}
		if got := FormatDate(w.Start); got != "2024-01-08" {
			t.Fatalf("today %s: week start = %s", FormatDate(today), got)
		}
		if got := FormatDate(w.End); got != "2024-01-14" {
			t.Fatalf("today %s: week end = %s", FormatDate(today), got)
		}
		for i, slot := range w.Days {
			if slot.Label != WeekdayLabels[i] {
				t.Fatalf("slot %d label = %q", i, slot.Label)
			}
		}
		if w.Days[0].Record == nil || w.Days[0].Record.Emotion != "기쁨" {
			t.Fatalf("expected Monday record, got %+v", w.Days[0].Record)
		}
		if w.Days[4].Record == nil || w.Days[4].Record.Emotion != "평온" {
			t.Fatalf("expected Friday record, got %+v", w.Days[4].Record)
		}
		for _, i := range []int{1, 2, 3, 5, 6} {
			if w.Days[i].Record != nil {
				t.Fatalf("slot %d should be absent, got %+v", i, w.Days[i].Record)
			}
		}
	}
}

func TestWeeklyEmptyStore(t *testing.T) {
	w := Weekly(nil, day(2024, 3, 3))
	if !w.Empty() || len(w.Days) != 7 {
		t.Fatalf("expected 7 empty slots, got %+v", w)
	}
	if FormatDate(w.Start) != "2024-02-26" {
		t.Fatalf("Sunday should belong to the week starting the previous Monday, got %s", FormatDate(w.Start))
	}
}

func TestMonthGrid(t *testing.T) {
	want := [][7]int{
		{0, 0, 0, 0, 1, 2, 3},
		{4, 5, 6, 7, 8, 9, 10},
		{11, 12, 13, 14, 15, 16, 17},
		{18, 19, 20, 21, 22, 23, 24},
		{25, 26, 27, 28, 29, 30, 31},
	}
	if diff := cmp.Diff(want, MonthGrid(2024, 3)); diff != "" {
		t.Fatalf("MonthGrid(2024, 3) mismatch (-want +got):\n%s", diff)
	}

	feb := MonthGrid(2021, 2) // starts on Monday, 28 days
	if len(feb) != 4 || feb[0][0] != 1 || feb[3][6] != 28 {
		t.Fatalf("unexpected February 2021 grid: %v", feb)
	}

	leap := MonthGrid(2024, 2)
	last := leap[len(leap)-1]
	if last[3] != 29 || last[4] != 0 {
		t.Fatalf("unexpected leap February tail: %v", last)
	}
}

func TestMonthlyPrefixFilter(t *testing.T) {
	records := []Record{
		{Date: "2024-03-01", Emotion: "기쁨", Color: "#FFD700"},
		{Date: "2024-03-15", Emotion: "슬픔", Color: "#1E90FF"},
		{Date: "2024-04-01", Emotion: "화남", Color: "#DC143C"},
	}
	view := Monthly(records, 2024, 3)

	if diff := cmp.Diff(records[:2], view.Records); diff != "" {
		t.Fatalf("monthly records mismatch (-want +got):\n%s", diff)
	}
	wantEmotions := map[string]string{"2024-03-01": "기쁨", "2024-03-15": "슬픔"}
	if diff := cmp.Diff(wantEmotions, view.Emotions); diff != "" {
		t.Fatalf("emotion lookup mismatch (-want +got):\n%s", diff)
	}
	if view.Colors["2024-03-15"] != "#1E90FF" {
		t.Fatalf("unexpected color lookup: %v", view.Colors)
	}
	if view.DateOf(5) != "2024-03-05" {
		t.Fatalf("DateOf(5) = %q", view.DateOf(5))
	}
	if !Monthly(records, 2024, 5).Empty() {
		t.Fatal("May should be empty")
	}
}

func TestPreviousMonth(t *testing.T) {
	if y, m := PreviousMonth(2024, 1); y != 2023 || m != 12 {
		t.Fatalf("PreviousMonth(2024, 1) = %d, %d", y, m)
	}
	if y, m := PreviousMonth(2024, 7); y != 2024 || m != 6 {
		t.Fatalf("PreviousMonth(2024, 7) = %d, %d", y, m)
	}
}

func TestTimeline(t *testing.T) {
	records := []Record{
		{Date: "2024-02-28"},
		{Date: "2024-03-04"},
		{Date: "2024-03-06"},
		{Date: "2024-03-20"},
	}
	now := day(2024, 3, 7)

	dates := func(rs []Record) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Date
		}
		return out
	}

	if diff := cmp.Diff([]string{"2024-02-28", "2024-03-04", "2024-03-06", "2024-03-20"}, dates(Timeline(records, PeriodAll, now))); diff != "" {
		t.Fatalf("all (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2024-03-04", "2024-03-06", "2024-03-20"}, dates(Timeline(records, PeriodMonth, now))); diff != "" {
		t.Fatalf("month (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2024-03-04", "2024-03-06"}, dates(Timeline(records, PeriodWeek, now))); diff != "" {
		t.Fatalf("week (-want +got):\n%s", diff)
	}
}

func TestDistribution(t *testing.T) {
	records := []Record{
		{Date: "2024-03-01", Emotion: "기쁨"},
		{Date: "2024-03-02", Emotion: "슬픔"},
		{Date: "2024-03-03", Emotion: "기쁨"},
		{Date: "2024-03-04", Emotion: "사라진감정"},
	}
	colors := map[string]string{"기쁨": "#FFD700", "슬픔": "#1E90FF"}
	colorOf := func(name string) (string, bool) {
		c, ok := colors[name]
		return c, ok
	}

	want := []EmotionCount{
		{Emotion: "기쁨", Color: "#FFD700", Count: 2, Percent: 50},
		{Emotion: "슬픔", Color: "#1E90FF", Count: 1, Percent: 25},
		{Emotion: "사라진감정", Color: FallbackColor, Count: 1, Percent: 25},
	}
	if diff := cmp.Diff(want, Distribution(records, colorOf)); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
	if got := Distribution(nil, colorOf); len(got) != 0 {
		t.Fatalf("expected empty distribution, got %v", got)
	}
}
