// Package menu runs the interactive numbered-menu loop of the journal.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"maeum/internal/core"
	"maeum/internal/emotion"
	"maeum/internal/log"
	"maeum/internal/ui"
	"maeum/internal/weather"
)

// Journal is the set of journal operations the menu drives.
type Journal interface {
	Catalog() emotion.Catalog
	Today() time.Time
	WeatherEnabled() bool
	Location() (city, country string)
	RecordToday(ctx context.Context, note, emotion string) (core.Record, error)
	CurrentWeather(ctx context.Context, city, country string) *core.WeatherReport
	CachedWeather() *core.WeatherReport
	AttachWeather(ctx context.Context, date string, report core.WeatherReport) (bool, error)
	Records(ctx context.Context) []core.Record
	TodayRecord(ctx context.Context) (core.Record, bool)
	Weekly(ctx context.Context) core.Week
	Monthly(ctx context.Context, year, month int) (core.MonthView, error)
	Timeline(ctx context.Context, period core.Period) []core.Record
	Distribution(ctx context.Context) []core.EmotionCount
}

// Menu reads choices from in and writes every view to out.
type Menu struct {
	journal Journal
	in      *bufio.Reader
	out     io.Writer
	ui      *ui.Renderer
	logger  *log.Logger
}

func New(journal Journal, in io.Reader, out io.Writer, logger *log.Logger) *Menu {
	return &Menu{
		journal: journal,
		in:      bufio.NewReader(in),
		out:     out,
		ui:      ui.New(out),
		logger:  log.OrDiscard(logger).WithComponent(log.ComponentMenu),
	}
}

// Run shows the main menu until the exit choice, the end of input or the
// cancellation of ctx.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printHeader()
		choice, err := m.prompt("\n선택: ")
		if err != nil {
			return m.stop(err)
		}

		switch choice {
		case "1":
			err = m.RecordToday(ctx)
		case "2":
			m.ShowWeekly(ctx)
		case "3":
			err = m.monthly(ctx)
		case "4":
			err = m.visualize(ctx)
		case "5":
			err = m.weather(ctx)
		case "6":
			m.println("\n프로그램을 종료합니다.")
			return nil
		default:
			m.println("\n잘못된 선택입니다. 다시 선택해주세요.")
		}
		if err != nil {
			return m.stop(err)
		}
	}
}

func (m *Menu) printHeader() {
	m.println("\n" + m.ui.Title("======= 마음기록기 ======="))
	if report := m.journal.CachedWeather(); report != nil {
		m.println("오늘의 날씨: " + weather.Summary(report))
	}
	m.println("1. 오늘의 감정 기록하기")
	m.println("2. 주간 감정 요약 보기")
	m.println("3. 월간 감정 요약 보기")
	m.println("4. 전체 감정 지도 보기")
	m.println("5. 날씨 정보 보기")
	m.println("6. 종료")
}

// stop ends the loop. Running out of input is a normal exit.
func (m *Menu) stop(err error) error {
	if errors.Is(err, io.EOF) {
		m.println("\n프로그램을 종료합니다.")
		return nil
	}
	return err
}

// prompt writes label and reads one trimmed line of any length. It returns
// io.EOF once the input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimSpace(line), nil
}

// promptDefault is prompt with a fallback for an empty answer.
func (m *Menu) promptDefault(label, def string) (string, error) {
	answer, err := m.prompt(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// promptChoice asks until it reads a number in 1..n.
func (m *Menu) promptChoice(label string, n int) (int, error) {
	for {
		answer, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(answer)
		if err != nil {
			m.println("숫자를 입력해주세요.")
			continue
		}
		if choice < 1 || choice > n {
			m.println(fmt.Sprintf("1부터 %d 사이의 숫자를 입력해주세요.", n))
			continue
		}
		return choice, nil
	}
}

// promptYearMonth reads a year and a month. ok is false when either is not
// a number or out of range; the reason has been printed.
func (m *Menu) promptYearMonth() (year, month int, ok bool, err error) {
	yearText, err := m.prompt("연도: ")
	if err != nil {
		return 0, 0, false, err
	}
	monthText, err := m.prompt("월 (1-12): ")
	if err != nil {
		return 0, 0, false, err
	}

	year, yerr := strconv.Atoi(yearText)
	month, merr := strconv.Atoi(monthText)
	if yerr != nil || merr != nil {
		m.println("유효한 숫자를 입력해주세요.")
		return 0, 0, false, nil
	}

	if verr := core.ValidateYearMonth(year, month); verr != nil {
		m.println(yearMonthProblem(verr))
		return 0, 0, false, nil
	}
	return year, month, true, nil
}

func yearMonthProblem(err error) string {
	if errors.Is(err, core.ErrInvalidYear) {
		return "유효한 연도를 입력해주세요."
	}
	return "유효한 월을 입력해주세요."
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) print(s string) {
	fmt.Fprint(m.out, s)
}
