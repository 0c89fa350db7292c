package domain

import "time"

// Medicine is a recurring reminder item owned by one user. Times are local
// HH:MM strings interpreted in the item's own IANA timezone; start/end dates
// are inclusive YYYY-MM-DD strings in that same zone.
type Medicine struct {
	ID            string   `json:"id" firestore:"-"`
	UserID        string   `json:"user_id" firestore:"userId"`
	Name          string   `json:"name" firestore:"name"`
	MealTiming    string   `json:"meal_timing" firestore:"mealTiming"`
	TimesPerDay   int      `json:"times_per_day" firestore:"timesPerDay"`
	Times         []string `json:"times" firestore:"times"`
	StartDate     string   `json:"start_date" firestore:"startDate"`
	EndDate       string   `json:"end_date" firestore:"endDate"`
	AlertsEnabled bool     `json:"alerts_enabled" firestore:"alertsEnabled"`
	TimeZone      string   `json:"time_zone" firestore:"timeZone"`
}

// Location resolves the item's timezone. Unset or unparseable zone names
// fall back to UTC; that fallback is the documented behavior, not an error.
func (m *Medicine) Location() *time.Location {
	if m.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(m.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// InDateRange reports whether the given ISO date is inside the item's
// optional [StartDate, EndDate] bounds. Dates are compared lexically, which
// is exact for the YYYY-MM-DD format. A missing bound is unbounded on that
// side.
func (m *Medicine) InDateRange(todayISO string) bool {
	if m.StartDate != "" && todayISO < m.StartDate {
		return false
	}
	if m.EndDate != "" && todayISO > m.EndDate {
		return false
	}
	return true
}
