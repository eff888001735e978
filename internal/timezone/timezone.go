package timezone

import "time"

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// OrDefault returns tz when it names a known zone, otherwise the fallback
// (or UTC when the fallback is unknown too).
func OrDefault(tz, fallback string) string {
	if IsValid(tz) {
		return tz
	}
	if IsValid(fallback) {
		return fallback
	}
	return DefaultTimezone
}

func Now() time.Time {
	return time.Now().UTC()
}
