// internal/progress/progress.go
package progress

import (
	"fmt"
	"strings"
)

const barLength = 10

// TimeToText renders a duration in seconds with a unit that suits it.
// The thresholds are exclusive: exactly 60 s is still "60 s".
func TimeToText(seconds float64) string {
	switch {
	case seconds > 62899252:
		return "years"
	case seconds > 1209600:
		return fmt.Sprintf("%.1f weeks", seconds/1209600)
	case seconds > 86400:
		return fmt.Sprintf("%.1f d", seconds/86400)
	case seconds > 3600:
		return fmt.Sprintf("%.1f h", seconds/3600)
	case seconds > 60:
		return fmt.Sprintf("%.1f min", seconds/60)
	}
	return fmt.Sprintf("%d s", int(seconds))
}

// Bar renders one carriage-return-led progress line. At p == 1 the line
// ends with "Done" and a newline; otherwise it carries the ETA.
func Bar(p float64, info string, eta float64) string {
	block := int(barLength * p)
	if block < 0 {
		block = 0
	}
	if block > barLength {
		block = barLength
	}
	var status string
	if p == 1.0 {
		status = "         Done\n"
	} else {
		status = fmt.Sprintf("  ETA %-8s", TimeToText(eta))
	}
	return fmt.Sprintf("\r%s: [%s%s] %5.1f%%%s",
		info, strings.Repeat("=", block), strings.Repeat(" ", barLength-block), p*100, status)
}
