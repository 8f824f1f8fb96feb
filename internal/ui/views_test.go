package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"maeum/internal/core"
)

func plain() *Renderer {
	return New(&bytes.Buffer{})
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestWeekly(t *testing.T) {
	withWeather, err := core.Record{Date: "2024-05-13", Note: "출근", Emotion: "지침", Color: "#CD853F"}.
		WithWeather(core.WeatherReport{Emoji: "🌧️", Temp: 12.34})
	if err != nil {
		t.Fatalf("WithWeather: %v", err)
	}
	records := []core.Record{
		withWeather,
		{Date: "2024-05-15", Note: "산책", Emotion: "기쁨", Color: "#FFD700"},
	}
	week := core.Weekly(records, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))

	want := []string{
		"이번 주 감정 요약 (2024-05-13 ~ 2024-05-19)",
		"월 (13일): 😩 지침 | 🌧️ 12.3°C - 출근",
		"화 (14일): 기록 없음",
		"수 (15일): 😊 기쁨 - 산책",
		"목 (16일): 기록 없음",
		"금 (17일): 기록 없음",
		"토 (18일): 기록 없음",
		"일 (19일): 기록 없음",
	}
	if diff := cmp.Diff(want, lines(plain().Weekly(week))); diff != "" {
		t.Fatalf("weekly mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthCalendar(t *testing.T) {
	records := []core.Record{
		{Date: "2024-02-01", Emotion: "기쁨", Color: "#FFD700"},
		{Date: "2024-02-29", Emotion: "평온", Color: "#98FB98"},
	}
	got := lines(plain().MonthCalendar(core.Monthly(records, 2024, 2)))

	want := []string{
		"2024년 2월 감정 캘린더",
		"월  화  수  목  금  토  일",
		"             1😊  2    3    4",
		" 5    6    7    8    9   10   11",
		"12   13   14   15   16   17   18",
		"19   20   21   22   23   24   25",
		"26   27   28   29😌",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("calendar mismatch (-want +got):\n%s", diff)
	}
}

func TestColorCalendar(t *testing.T) {
	records := []core.Record{{Date: "2024-02-14", Emotion: "설렘", Color: "#FF69B4"}}
	out := plain().ColorCalendar(core.Monthly(records, 2024, 2))

	for _, want := range []string{"2024년 2월 감정 캘린더", "설렘", "14", "29"} {
		if !strings.Contains(out, want) {
			t.Fatalf("color calendar missing %q:\n%s", want, out)
		}
	}
}

func TestTimelineLegend(t *testing.T) {
	records := []core.Record{
		{Date: "2024-05-01", Emotion: "기쁨", Color: "#FFD700", Note: "휴일"},
		{Date: "2024-05-02", Emotion: "슬픔", Color: "#1E90FF"},
		{Date: "2024-05-03", Emotion: "기쁨", Color: "#FFD700"},
		{Date: "2024-05-04", Emotion: "기쁨", Color: "#000000"},
	}
	got := lines(plain().Timeline(records, "2024년 05월"))

	if got[0] != "감정 지도 - 2024년 05월" {
		t.Fatalf("unexpected title %q", got[0])
	}
	if !strings.Contains(got[1], "05/01") || !strings.Contains(got[1], "기쁨") || !strings.Contains(got[1], "휴일") {
		t.Fatalf("unexpected first entry %q", got[1])
	}

	legend := got[len(got)-3:]
	want := []string{"■ 기쁨", "■ 슬픔", "■ 기쁨"}
	if diff := cmp.Diff(want, legend); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
}

func TestDistribution(t *testing.T) {
	counts := []core.EmotionCount{
		{Emotion: "기쁨", Color: "#FFD700", Count: 3, Percent: 75},
		{Emotion: "공허함", Color: "#A9A9A9", Count: 1, Percent: 25},
	}
	got := lines(plain().Distribution(counts))

	if len(got) != 3 {
		t.Fatalf("expected title plus two bars, got %q", got)
	}
	if !strings.Contains(got[1], strings.Repeat("█", maxBarWidth)+" 3 (75.0%)") {
		t.Fatalf("unexpected top bar %q", got[1])
	}
	if !strings.Contains(got[2], strings.Repeat("█", 10)+" 1 (25.0%)") {
		t.Fatalf("unexpected second bar %q", got[2])
	}
}

func TestWeatherDetails(t *testing.T) {
	report := &core.WeatherReport{
		Date:        "2024-05-15",
		Main:        "Clear",
		Description: "clear sky",
		Temp:        21.4,
		FeelsLike:   20.9,
		Humidity:    40,
		Emoji:       "☀️",
	}
	got := lines(plain().WeatherDetails("Seoul", "kr", report))
	want := []string{
		"📍 Seoul, KR 날씨 정보:",
		"날짜: 2024-05-15",
		"날씨: ☀️ clear sky",
		"온도: 21.4°C (체감: 20.9°C) · 습도: 40%",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("details mismatch (-want +got):\n%s", diff)
	}

	if got := plain().WeatherDetails("Seoul", "kr", nil); got != "날씨 정보 없음\n" {
		t.Fatalf("nil report = %q", got)
	}
}

func TestPeriodLabel(t *testing.T) {
	if PeriodLabel(core.PeriodAll) != "전체" || PeriodLabel(core.PeriodWeek) != "이번 주" {
		t.Fatal("unexpected period labels")
	}
}
