package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"maeum/internal/core"
	"maeum/internal/emotion"
	"maeum/internal/weather"
)

const maxBarWidth = 30

// PeriodLabel names a timeline period in messages.
func PeriodLabel(p core.Period) string {
	switch p {
	case core.PeriodMonth:
		return "이번 달"
	case core.PeriodWeek:
		return "이번 주"
	default:
		return "전체"
	}
}

// Weekly lists the seven days of a week, one line per day.
func (r *Renderer) Weekly(w core.Week) string {
	var sb strings.Builder
	sb.WriteString(r.Title(fmt.Sprintf("이번 주 감정 요약 (%s ~ %s)",
		core.FormatDate(w.Start), core.FormatDate(w.End))))
	sb.WriteString("\n")

	for _, d := range w.Days {
		fmt.Fprintf(&sb, "%s (%d일): ", d.Label, d.Date.Day())
		if d.Record == nil {
			sb.WriteString(r.Muted("기록 없음"))
			sb.WriteString("\n")
			continue
		}
		fmt.Fprintf(&sb, "%s %s", emotion.EmojiFor(d.Record.Emotion), d.Record.Emotion)
		if report, ok := d.Record.WeatherReport(); ok && report.Emoji != "" {
			fmt.Fprintf(&sb, " | %s %.1f°C", report.Emoji, report.Temp)
		}
		fmt.Fprintf(&sb, " - %s\n", d.Record.Note)
	}
	return sb.String()
}

// MonthCalendar draws the month grid with an emoji on each recorded day.
func (r *Renderer) MonthCalendar(v core.MonthView) string {
	var sb strings.Builder
	sb.WriteString(r.Title(fmt.Sprintf("%d년 %d월 감정 캘린더", v.Year, v.Month)))
	sb.WriteString("\n")
	sb.WriteString(r.styles.Header.Render(strings.Join(core.WeekdayLabels[:], "  ")))
	sb.WriteString("\n")

	for _, week := range v.Grid {
		var line strings.Builder
		for _, day := range week {
			switch {
			case day == 0:
				line.WriteString("    ")
			case v.Emotions[v.DateOf(day)] != "":
				fmt.Fprintf(&line, "%2d%s ", day, emotion.EmojiFor(v.Emotions[v.DateOf(day)]))
			default:
				fmt.Fprintf(&line, "%2d   ", day)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ColorCalendar draws the month grid with each recorded day painted in its
// emotion color and labelled with the emotion.
func (r *Renderer) ColorCalendar(v core.MonthView) string {
	const cellWidth = 8

	cell := r.lg.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	var sb strings.Builder
	sb.WriteString(r.Title(fmt.Sprintf("%d년 %d월 감정 캘린더", v.Year, v.Month)))
	sb.WriteString("\n")

	headers := make([]string, len(core.WeekdayLabels))
	for i, label := range core.WeekdayLabels {
		headers[i] = cell.Inherit(r.styles.Header).Render(label)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	sb.WriteString("\n")

	for _, week := range v.Grid {
		cells := make([]string, len(week))
		for i, day := range week {
			switch {
			case day == 0:
				cells[i] = cell.Render("")
			case v.Emotions[v.DateOf(day)] != "":
				date := v.DateOf(day)
				cells[i] = cell.
					Background(lipgloss.Color(colorOr(v.Colors[date]))).
					Foreground(lipgloss.Color("#101F38")).
					Render(fmt.Sprintf("%d\n%s", day, v.Emotions[date]))
			default:
				cells[i] = cell.Render(fmt.Sprintf("%d", day))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Timeline draws records as a strip of colored days followed by a legend of
// the distinct emotion and color pairs, in order of first appearance.
func (r *Renderer) Timeline(records []core.Record, title string) string {
	var sb strings.Builder
	heading := "감정 지도"
	if title != "" {
		heading += " - " + title
	}
	sb.WriteString(r.Title(heading))
	sb.WriteString("\n")

	type pair struct{ emotion, color string }
	var legend []pair
	seen := make(map[pair]bool)

	for _, rec := range records {
		color := colorOr(rec.Color)
		label := rec.Date
		if t, err := core.ParseDate(rec.Date); err == nil {
			label = t.Format("01/02")
		}
		fmt.Fprintf(&sb, "%s %s %s", label, r.swatch(color, "  "), rec.Emotion)
		if rec.Note != "" {
			sb.WriteString(r.Muted(" - " + rec.Note))
		}
		sb.WriteString("\n")

		p := pair{rec.Emotion, color}
		if !seen[p] {
			seen[p] = true
			legend = append(legend, p)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(r.styles.Header.Render("범례"))
	sb.WriteString("\n")
	for _, p := range legend {
		fmt.Fprintf(&sb, "%s %s\n", r.dot(p.color), p.emotion)
	}
	return sb.String()
}

// Distribution draws one bar per emotion, scaled to the largest count.
func (r *Renderer) Distribution(counts []core.EmotionCount) string {
	var sb strings.Builder
	sb.WriteString(r.Title("감정 분포 (전체 기간)"))
	sb.WriteString("\n")

	nameWidth, maxCount := 0, 0
	for _, c := range counts {
		nameWidth = max(nameWidth, lipgloss.Width(c.Emotion))
		maxCount = max(maxCount, c.Count)
	}

	name := r.lg.NewStyle().Width(nameWidth)
	for _, c := range counts {
		width := 1
		if maxCount > 0 {
			width = max(1, c.Count*maxBarWidth/maxCount)
		}
		bar := r.lg.NewStyle().Foreground(lipgloss.Color(colorOr(c.Color))).
			Render(strings.Repeat("█", width))
		fmt.Fprintf(&sb, "%s %s %d (%.1f%%)\n", name.Render(c.Emotion), bar, c.Count, c.Percent)
	}
	return sb.String()
}

// WeatherDetails renders a full weather report for a city.
func (r *Renderer) WeatherDetails(city, country string, report *core.WeatherReport) string {
	if report == nil {
		return weather.NoWeather + "\n"
	}
	var sb strings.Builder
	sb.WriteString(r.styles.Header.Render(fmt.Sprintf("📍 %s, %s 날씨 정보:", city, strings.ToUpper(country))))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "날짜: %s\n", report.Date)
	fmt.Fprintf(&sb, "날씨: %s %s\n", report.Emoji, report.Description)
	sb.WriteString(weather.Details(report))
	sb.WriteString("\n")
	return sb.String()
}

func colorOr(c string) string {
	if strings.TrimSpace(c) == "" {
		return core.FallbackColor
	}
	return c
}
