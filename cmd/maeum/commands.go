package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"maeum/internal/core"
	"maeum/internal/menu"
)

var errNotSaved = errors.New("record not saved")

func recordCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "record <emotion>",
		Short: "Record today's emotion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				if !m.SaveRecord(ctx, note, args[0]) {
					return errNotSaved
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "one sentence about today")
	return cmd
}

func weeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Show this week's emotions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				m.ShowWeekly(ctx)
				return nil
			})
		},
	}
}

func monthlyCmd() *cobra.Command {
	var (
		year, month int
		colored     bool
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show the emotion calendar of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if err := core.ValidateYearMonth(year, month); err != nil {
				return fmt.Errorf("%d-%d: %w", year, month, err)
			}
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				m.ShowMonth(ctx, year, month, colored)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "year (default: this year)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: this month)")
	cmd.Flags().BoolVar(&colored, "color", false, "paint days in their emotion color")
	return cmd
}

func mapCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show the emotion timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := core.Period(strings.ToLower(period))
			switch p {
			case core.PeriodAll, core.PeriodMonth, core.PeriodWeek:
			default:
				return fmt.Errorf("invalid period %q: must be all, month or week", period)
			}
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				m.ShowTimeline(ctx, p)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", string(core.PeriodAll), "all, month or week")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how often each emotion was recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				m.ShowDistribution(ctx)
				return nil
			})
		},
	}
}

func weatherCmd() *cobra.Command {
	var (
		city, country string
		attach        bool
	)

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show today's weather, optionally saving it on today's record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMenu(cmd, func(ctx context.Context, m *menu.Menu) error {
				report := m.ShowWeather(ctx, city, country)
				if report == nil || !attach {
					return nil
				}
				m.AttachWeather(ctx, core.FormatDate(time.Now()), *report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city name in English (default: WEATHER_CITY)")
	cmd.Flags().StringVar(&country, "country", "", "country code (default: WEATHER_COUNTRY)")
	cmd.Flags().BoolVar(&attach, "attach", false, "save the report on today's record")
	return cmd
}
