package exhibitions

import (
	"strconv"
	"time"
	"unicode/utf16"
)

// DateKey formats t as "year-month-day" without zero padding, in t's own
// location. Callers pass server-local time.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return strconv.Itoa(y) + "-" + strconv.Itoa(int(m)) + "-" + strconv.Itoa(d)
}

// DateHash is the classic h*31+c string hash over UTF-16 code units,
// wrapping at 32 bits.
func DateHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}

// DailyIndex picks the candidate index for date among n candidates.
// n must be positive.
func DailyIndex(date time.Time, n int) int {
	h := int64(DateHash(DateKey(date)))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// SelectDaily returns the exhibition shown on date. The same candidate order
// and the same calendar date always give the same pick.
func SelectDaily(candidates []Exhibition, date time.Time) (Exhibition, bool) {
	if len(candidates) == 0 {
		return Exhibition{}, false
	}
	return candidates[DailyIndex(date, len(candidates))], true
}
