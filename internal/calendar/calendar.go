// Package calendar decides whether a trading run should happen today.
// It checks the US equity market calendar first and only consults the
// brokerage clock on plausible trading days.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"

	"daily-trading-bot/internal/types"
)

// ClockSource is the slice of the broker the gate needs.
type ClockSource interface {
	Clock(ctx context.Context) (types.Clock, error)
}

// Session-window fallback when the brokerage clock is unreachable.
const (
	openHour    = 9
	openMinute  = 30
	closeHour   = 16
	closeMinute = 0
)

type Gate struct {
	cal   *cal.BusinessCalendar
	clock ClockSource
	loc   *time.Location
	now   func() time.Time
}

func NewGate(clock ClockSource) *Gate {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		aa.GoodFriday,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*60*60)
	}
	return &Gate{cal: c, clock: clock, loc: loc, now: time.Now}
}

// ShouldRun reports whether the market is tradable right now and a short
// human-readable reason when it is not.
func (g *Gate) ShouldRun(ctx context.Context) (bool, string) {
	now := g.now().In(g.loc)

	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return false, fmt.Sprintf("weekend (%s)", now.Weekday())
	}
	if actual, observed, h := g.cal.IsHoliday(now); (actual || observed) && h != nil {
		return false, fmt.Sprintf("market holiday (%s)", h.Name)
	}

	clock, err := g.clock.Clock(ctx)
	if err != nil {
		// Clock lookup failed; fall back to the regular session window.
		if g.inSessionWindow(now) {
			return true, ""
		}
		return false, "outside regular session hours"
	}
	if !clock.IsOpen {
		return false, "market closed"
	}
	return true, ""
}

func (g *Gate) inSessionWindow(now time.Time) bool {
	open := time.Date(now.Year(), now.Month(), now.Day(), openHour, openMinute, 0, 0, g.loc)
	close := time.Date(now.Year(), now.Month(), now.Day(), closeHour, closeMinute, 0, 0, g.loc)
	return !now.Before(open) && now.Before(close)
}
