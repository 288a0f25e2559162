package city

import (
	"fmt"
	"time"
)

// Season gates seasonal events.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// SeasonForMonth maps a calendar month (1..12) onto its season:
// Dec-Feb winter, Mar-May spring, Jun-Aug summer, Sep-Nov autumn.
func SeasonForMonth(month int) Season {
	switch month {
	case 12, 1, 2:
		return SeasonWinter
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// Season returns the current season.
func (g *GameState) Season() Season {
	return SeasonForMonth(g.CurrentMonth)
}

// DateString renders the calendar as DD.MM.YYYY.
func (g *GameState) DateString() string {
	return fmt.Sprintf("%02d.%02d.%d", g.CurrentDay, g.CurrentMonth, g.CurrentYear)
}

// DaysInOffice counts simulated days since 1 January of the start year on the
// fixed 30-day, 12-month calendar.
func (g *GameState) DaysInOffice() int {
	return (g.CurrentYear-StartYear)*MonthsPerYear*DaysPerMonth +
		(g.CurrentMonth-1)*DaysPerMonth + (g.CurrentDay - 1)
}

// StartTimestamp is the Unix millisecond stamp of the first in-game day.
func StartTimestamp() int64 {
	return time.Date(StartYear, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
}
