package scan

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kacchan-writer/letus-watcher/core"
)

// LETUS renders deadlines either in the Japanese numeric calendar form
// ("2025年8月5日 21:00") or, under the English UI locale, as a long-form
// date with a 12-hour clock ("5 August 2025 at 9:15 PM").
var (
	jpDueRe = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日\s*(\d{1,2}):(\d{2})`)
	enDueRe = regexp.MustCompile(`(?i)(\d{1,2})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4}).*?(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// ParseDueDate normalizes free-text deadline strings into a JST timestamp.
// The Japanese form is tried first; the first match per form wins. Text
// matching neither form, or carrying impossible calendar fields, yields the
// null time. Timezone hints in the text itself are never honored.
func ParseDueDate(text string) null.Time {
	if m := jpDueRe.FindStringSubmatch(text); m != nil {
		return makeDue(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]))
	}
	if m := enDueRe.FindStringSubmatch(text); m != nil {
		mon, ok := monthByAbbr(m[2])
		if !ok {
			return null.Time{}
		}
		hh := atoi(m[4])%12 + meridiemOffset(m[6])
		return makeDue(atoi(m[3]), mon, atoi(m[1]), hh, atoi(m[5]))
	}
	return null.Time{}
}

func makeDue(y, mon, d, hh, mm int) null.Time {
	if mon < 1 || mon > 12 || d < 1 || d > 31 || hh > 23 || mm > 59 {
		return null.Time{}
	}
	t := time.Date(y, time.Month(mon), d, hh, mm, 0, 0, core.JST)
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2), so a
	// changed field means the day did not exist in that month.
	if t.Year() != y || t.Month() != time.Month(mon) || t.Day() != d {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

func monthByAbbr(name string) (int, bool) {
	abbr := strings.ToUpper(name[:1]) + strings.ToLower(name[1:3])
	t, err := time.Parse("Jan", abbr)
	if err != nil {
		return 0, false
	}
	return int(t.Month()), true
}

func meridiemOffset(ampm string) int {
	if strings.EqualFold(ampm, "pm") {
		return 12
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // inputs are \d+ capture groups
	return n
}
