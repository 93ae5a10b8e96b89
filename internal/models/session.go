package models

// RouteSession tracks one vendor's route through a business day. It is cached
// per vendor+date so a restart does not lose route-in-progress state, and is
// reconciled against backend performance records, which win.
type RouteSession struct {
	Vendor    string  `json:"vendor"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Day       Weekday `json:"day"`
	Start     string  `json:"start,omitempty"` // HH:MM; empty until the route opens
	Finished  bool    `json:"finished"`
	End       string  `json:"end,omitempty"` // HH:MM
	UpdatedAt string  `json:"updated_at"`    // RFC3339
}

// Open reports whether the session has an explicit start time.
func (s RouteSession) Open() bool {
	return s.Start != ""
}
