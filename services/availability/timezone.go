package availability

import "time"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ToAbsolute converts a wall-clock date + time in a named IANA zone to the
// absolute UTC instant. A wall-clock time that does not exist in that zone
// on that date (DST spring-forward gap) is rejected with
// InvalidTimeInputError — time.Date would silently shift it forward, and a
// shifted slot boundary is worse than a refused one.
func ToAbsolute(date, clock, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, InvalidTimeInputError{Date: date, Clock: clock, Zone: zone, Reason: "unknown timezone"}
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, InvalidTimeInputError{Date: date, Clock: clock, Zone: zone, Reason: "malformed date"}
	}
	wall, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, InvalidTimeInputError{Date: date, Clock: clock, Zone: zone, Reason: "malformed time"}
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), wall.Hour(), wall.Minute(), 0, 0, loc)

	// time.Date normalizes a nonexistent wall clock by sliding it across the
	// DST gap; detect that by round-tripping.
	if t.Hour() != wall.Hour() || t.Minute() != wall.Minute() || t.Format(dateLayout) != date {
		return time.Time{}, InvalidTimeInputError{Date: date, Clock: clock, Zone: zone, Reason: "time does not exist in zone (DST gap)"}
	}

	return t.UTC(), nil
}

// ToLocal converts an absolute instant to its wall-clock representation in a
// named zone. Total for any valid instant; fails only on an unknown zone.
func ToLocal(instant time.Time, zone string) (date, clock string, err error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", "", InvalidTimeInputError{Zone: zone, Reason: "unknown timezone"}
	}
	local := instant.In(loc)
	return local.Format(dateLayout), local.Format(clockLayout), nil
}
