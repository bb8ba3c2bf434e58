package countdown

import (
	"sync"
	"time"
)

// formatLayout renders hours:minutes:seconds.hundredths.
const formatLayout = "15:04:05.00"

// spanFormatter renders a span as a clock reading taken from a UTC zero reference,
// so the output is the elapsed span and never a wall-clock time.
type spanFormatter struct {
	layout string
	epoch  time.Time
}

//nolint:gochecknoglobals // Shared formatter built once and reused.
var (
	formatterOnce sync.Once
	formatterInst *spanFormatter
)

func formatter() *spanFormatter {
	formatterOnce.Do(func() {
		formatterInst = &spanFormatter{
			layout: formatLayout,
			epoch:  time.Unix(0, 0).UTC(),
		}
	})
	return formatterInst
}

func (f *spanFormatter) format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return f.epoch.Add(d).Format(f.layout)
}

// Format renders d as HH:mm:ss.ss, truncating to hundredths of a second.
// Negative spans render as zero.
func Format(d time.Duration) string {
	return formatter().format(d)
}
