package notifysvc

import (
	"fmt"
	"strings"
	"time"

	"github.com/kacchan-writer/letus-watcher/core"
)

// ComposeAlertMessage renders the deadline summary delivered to the
// operator: a count header plus one line per assignment with the whole
// hours remaining.
func ComposeAlertMessage(alerts []core.Assignment, now time.Time) string {
	lines := make([]string, 0, len(alerts)+1)
	lines = append(lines, fmt.Sprintf("⚠ LETUS: 未提出課題 %d 件\n", len(alerts)))
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("• %s (あと %dh)", a.Label, a.HoursLeft(now)))
	}
	return strings.Join(lines, "\n")
}
