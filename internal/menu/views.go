package menu

import (
	"context"
	"fmt"

	"maeum/internal/core"
	"maeum/internal/emotion"
	"maeum/internal/log"
	"maeum/internal/ui"
	"maeum/internal/weather"
)

var cities = []struct {
	label, name string
}{
	{"서울", "Seoul"},
	{"부산", "Busan"},
	{"인천", "Incheon"},
	{"대구", "Daegu"},
}

// RecordToday asks for today's note and emotion and saves them.
func (m *Menu) RecordToday(ctx context.Context) error {
	m.println("\n오늘 하루를 한 문장으로 표현해보세요.")
	note, err := m.prompt("👉 ")
	if err != nil {
		return err
	}

	catalog := m.journal.Catalog()
	m.println("\n아래 감정 중 가장 가까운 걸 선택해주세요:")
	for i, e := range catalog.Entries() {
		m.println(fmt.Sprintf("%d. %s %s", i+1, e.Name, emotion.EmojiFor(e.Name)))
	}

	choice, err := m.promptChoice("\n번호 입력: ", catalog.Len())
	if err != nil {
		return err
	}
	picked, _ := catalog.At(choice)

	m.SaveRecord(ctx, note, picked.Name)
	return nil
}

// SaveRecord stores today's record and reports the outcome.
func (m *Menu) SaveRecord(ctx context.Context, note, emotionName string) bool {
	rec, err := m.journal.RecordToday(ctx, note, emotionName)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to save record",
			log.NewFields().WithRecord(core.FormatDate(m.journal.Today()), emotionName).WithError(err).ToSlice()...)
		m.println("\n" + m.ui.Error(fmt.Sprintf("기록을 저장하지 못했습니다: %v", err)))
		return false
	}

	if report, ok := rec.WeatherReport(); ok {
		m.println("📍 오늘의 날씨: " + weather.Summary(&report))
	}
	m.println("\n" + m.ui.Success(fmt.Sprintf("✅ '%s'으로 저장되었습니다. (%s)", rec.Emotion, rec.Date)))
	return true
}

// ShowWeekly prints the current week.
func (m *Menu) ShowWeekly(ctx context.Context) {
	if len(m.journal.Records(ctx)) == 0 {
		m.println("\n기록이 없습니다.")
		return
	}
	week := m.journal.Weekly(ctx)
	if week.Empty() {
		m.println("\n이번 주 기록이 없습니다.")
		return
	}
	m.print("\n" + m.ui.Weekly(week))
}

func (m *Menu) monthly(ctx context.Context) error {
	if len(m.journal.Records(ctx)) == 0 {
		m.println("\n기록이 없습니다.")
		return nil
	}

	today := m.journal.Today()
	year, month := today.Year(), int(today.Month())

	m.println("\n확인할 월을 선택하세요:")
	m.println(fmt.Sprintf("1. 이번 달 (%d월)", month))
	m.println("2. 지난 달")
	m.println("3. 다른 달 입력")

	choice, err := m.promptDefault("\n선택 (기본: 1): ", "1")
	if err != nil {
		return err
	}
	switch choice {
	case "2":
		year, month = core.PreviousMonth(year, month)
	case "3":
		y, mo, ok, err := m.promptYearMonth()
		if err != nil || !ok {
			return err
		}
		year, month = y, mo
	}

	m.ShowMonth(ctx, year, month, false)
	return nil
}

// ShowMonth prints the calendar of a month, as emoji or as colored cells.
func (m *Menu) ShowMonth(ctx context.Context, year, month int, colored bool) {
	if len(m.journal.Records(ctx)) == 0 {
		m.println("\n표시할 기록이 없습니다.")
		return
	}
	view, err := m.journal.Monthly(ctx, year, month)
	if err != nil {
		m.println(yearMonthProblem(err))
		return
	}
	if view.Empty() {
		m.println(fmt.Sprintf("\n%d년 %d월 기록이 없습니다.", year, month))
		return
	}
	if colored {
		m.print("\n" + m.ui.ColorCalendar(view))
		return
	}
	m.print("\n" + m.ui.MonthCalendar(view))
}

func (m *Menu) visualize(ctx context.Context) error {
	m.println("\n" + m.ui.Title("===== 감정 시각화 메뉴 ====="))
	m.println("1. 전체 기간 감정 지도")
	m.println("2. 이번 달 감정 지도")
	m.println("3. 이번 주 감정 지도")
	m.println("4. 월간 감정 캘린더")
	m.println("5. 감정 분포 통계")
	m.println("6. 돌아가기")

	choice, err := m.prompt("\n선택: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		m.ShowTimeline(ctx, core.PeriodAll)
	case "2":
		m.ShowTimeline(ctx, core.PeriodMonth)
	case "3":
		m.ShowTimeline(ctx, core.PeriodWeek)
	case "4":
		return m.calendar(ctx)
	case "5":
		m.ShowDistribution(ctx)
	case "6":
	default:
		m.println("잘못된 선택입니다. 다시 선택해주세요.")
	}
	return nil
}

func (m *Menu) calendar(ctx context.Context) error {
	today := m.journal.Today()
	year, month := today.Year(), int(today.Month())

	m.println("\n확인할 월을 선택하세요:")
	m.println(fmt.Sprintf("1. 이번 달 (%d월)", month))
	m.println("2. 다른 달 입력")

	choice, err := m.promptDefault("\n선택 (기본: 1): ", "1")
	if err != nil {
		return err
	}
	if choice == "2" {
		y, mo, ok, err := m.promptYearMonth()
		if err != nil || !ok {
			return err
		}
		year, month = y, mo
	}

	m.ShowMonth(ctx, year, month, true)
	return nil
}

// ShowTimeline prints the emotion timeline of a period.
func (m *Menu) ShowTimeline(ctx context.Context, period core.Period) {
	if len(m.journal.Records(ctx)) == 0 {
		m.println("표시할 기록이 없습니다.")
		return
	}
	records := m.journal.Timeline(ctx, period)
	if len(records) == 0 {
		m.println(fmt.Sprintf("선택한 기간(%s)에 표시할 기록이 없습니다.", ui.PeriodLabel(period)))
		return
	}

	today := m.journal.Today()
	title := ""
	switch period {
	case core.PeriodMonth:
		title = today.Format("2006년 01월")
	case core.PeriodWeek:
		start := core.StartOfWeek(today)
		title = fmt.Sprintf("%s ~ %s", core.FormatDate(start), core.FormatDate(start.AddDate(0, 0, 6)))
	}
	m.print("\n" + m.ui.Timeline(records, title))
}

// ShowDistribution prints the per-emotion counts of every record.
func (m *Menu) ShowDistribution(ctx context.Context) {
	counts := m.journal.Distribution(ctx)
	if len(counts) == 0 {
		m.println("표시할 기록이 없습니다.")
		return
	}
	m.print("\n" + m.ui.Distribution(counts))
}

func (m *Menu) weather(ctx context.Context) error {
	if !m.journal.WeatherEnabled() {
		m.println("\n날씨 기능을 사용할 수 없습니다.")
		m.println("WEATHER_API_KEY 환경 변수를 설정해주세요.")
		return nil
	}

	m.println("\n" + m.ui.Title("===== 날씨 정보 ====="))
	m.println("도시를 선택하세요:")
	for i, c := range cities {
		m.println(fmt.Sprintf("%d. %s", i+1, c.label))
	}
	m.println(fmt.Sprintf("%d. 다른 도시 입력", len(cities)+1))

	choice, err := m.promptDefault("\n선택 (기본: 1): ", "1")
	if err != nil {
		return err
	}

	city := ""
	for i, c := range cities {
		if choice == fmt.Sprint(i+1) {
			city = c.name
		}
	}
	if city == "" {
		if city, err = m.prompt("도시 이름 (영문): "); err != nil {
			return err
		}
	}

	_, defCountry := m.journal.Location()
	country, err := m.promptDefault(fmt.Sprintf("국가 코드 (기본: %s): ", defCountry), defCountry)
	if err != nil {
		return err
	}

	report := m.ShowWeather(ctx, city, country)
	if report == nil {
		return nil
	}

	today, ok := m.journal.TodayRecord(ctx)
	if !ok {
		return nil
	}
	answer, err := m.prompt("\n오늘의 감정 기록에 이 날씨 정보를 저장할까요? (y/n): ")
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	m.AttachWeather(ctx, today.Date, *report)
	return nil
}

// ShowWeather prints the current weather of a city and returns the report,
// or nil when it could not be fetched. Empty arguments select the default
// location.
func (m *Menu) ShowWeather(ctx context.Context, city, country string) *core.WeatherReport {
	if !m.journal.WeatherEnabled() {
		m.println("\n날씨 기능을 사용할 수 없습니다.")
		return nil
	}
	defCity, defCountry := m.journal.Location()
	if city == "" {
		city = defCity
	}
	if country == "" {
		country = defCountry
	}
	report := m.journal.CurrentWeather(ctx, city, country)
	if report == nil {
		m.println(m.ui.Warning("날씨 정보를 가져오는데 실패했습니다."))
		return nil
	}
	m.print("\n" + m.ui.WeatherDetails(weather.Capitalize(city), country, report))
	return report
}

// AttachWeather stores report on the record of date and reports the outcome.
func (m *Menu) AttachWeather(ctx context.Context, date string, report core.WeatherReport) bool {
	ok, err := m.journal.AttachWeather(ctx, date, report)
	switch {
	case err != nil:
		m.logger.ErrorContext(ctx, "Failed to attach weather", log.FieldDate, date, log.FieldError, err)
		m.println(m.ui.Error(fmt.Sprintf("날씨 정보를 저장하지 못했습니다: %v", err)))
		return false
	case !ok:
		m.println("오늘의 기록이 없습니다.")
		return false
	}
	m.println(m.ui.Success("✅ 날씨 정보가 오늘의 기록에 저장되었습니다."))
	return true
}
