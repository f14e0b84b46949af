package salary

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Format renders an amount in the display currency, e.g. ₹1,234,567.
func Format(amount int64) string {
	return fmt.Sprintf("₹%s", humanize.Comma(amount))
}

// Summary renders a range as "role: min / median / max" for log lines.
func (r Range) Summary() string {
	return fmt.Sprintf("%s: %s / %s / %s", r.Role, Format(r.Min), Format(r.Median), Format(r.Max))
}
