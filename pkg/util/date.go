package util

import "time"

// LongDate formats t the way signal prompts and headlines show it, e.g. "Wednesday, October 14, 2026".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// ClampDuration bounds d to [lo, hi]. A zero d yields def before clamping.
func ClampDuration(d, def, lo, hi time.Duration) time.Duration {
	if d == 0 {
		d = def
	}
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
