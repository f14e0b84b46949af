package insights

import "time"

// Current describes stored insights as far as refresh decisions go.
type Current struct {
	Exists       bool
	RoleCount    int
	GrowthRate   float64
	LastUpdated  time.Time
	ProfileSaved time.Time
}

// NeedsRefresh reports whether stored insights are missing, placeholders,
// or older than the user's last profile update.
func NeedsRefresh(c Current) bool {
	switch {
	case !c.Exists:
		return true
	case c.RoleCount == 0:
		return true
	case c.GrowthRate <= 0:
		return true
	case !c.LastUpdated.IsZero() && c.ProfileSaved.After(c.LastUpdated):
		return true
	}
	return false
}
