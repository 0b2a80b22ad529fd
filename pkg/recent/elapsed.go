package recent

import "time"

// Unit is the granularity of an elapsed time label.
type Unit string

const (
	JustNow Unit = "just_now"
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
)

// Elapsed buckets the time since t: under a minute is JustNow, then whole
// minutes, hours and days.
func Elapsed(now, t time.Time) (Unit, int) {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return JustNow, 0
	case d < time.Hour:
		return Minutes, int(d / time.Minute)
	case d < 24*time.Hour:
		return Hours, int(d / time.Hour)
	default:
		return Days, int(d / (24 * time.Hour))
	}
}
