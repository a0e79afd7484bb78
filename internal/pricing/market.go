package pricing

import "time"

// Market describes the trading session the resolver computes execution times
// against. Fine-grained bar timestamps are converted into Location before
// any offset math.
type Market struct {
	Location   *time.Location
	OpenHour   int
	OpenMinute int
	Label      string // timezone label for display, e.g. "ET"
}

// USEquities is the NYSE/NASDAQ session: open 09:30 America/New_York.
func USEquities() Market {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// The IANA database always carries America/New_York; losing it means
		// a broken local tzdata install.
		panic("pricing: load America/New_York: " + err.Error())
	}
	return Market{
		Location:   loc,
		OpenHour:   9,
		OpenMinute: 30,
		Label:      "ET",
	}
}

// OpenAt returns the session open on the calendar day of d, in the market's
// local time.
func (m Market) OpenAt(d time.Time) time.Time {
	y, mo, day := d.Date()
	return time.Date(y, mo, day, m.OpenHour, m.OpenMinute, 0, 0, m.Location)
}

// DayRange returns the half-open local range covering the calendar day of d.
func (m Market) DayRange(d time.Time) (time.Time, time.Time) {
	y, mo, day := d.Date()
	start := time.Date(y, mo, day, 0, 0, 0, 0, m.Location)
	return start, start.AddDate(0, 0, 1)
}
