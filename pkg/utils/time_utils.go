package utils

import "time"

// Japan time (JST, +09:00); the app's locale is fixed.
var jstLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Tokyo"); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*3600)
}()

// FormatDisplayJST renders a timestamp the way the history screen shows it,
// matching ja-JP locale output like "2026/8/31 14:05:09".
func FormatDisplayJST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(jstLoc).Format("2006/1/2 15:04:05")
}

// FormatRFC3339JST renders a timestamp for machine consumers, pinned to JST.
func FormatRFC3339JST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(jstLoc).Format(time.RFC3339)
}
