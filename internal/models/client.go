package models

// ClientType tags a client with its commercial profile.
type ClientType string

const (
	ClientTypeRetail ClientType = "retail"
	// ClientTypeWholesale clients with a delivery day set are dual-cadence:
	// an order visit on their primary day and a delivery visit on the
	// secondary day.
	ClientTypeWholesale ClientType = "wholesale"
)

// Client is one roster entry. Immutable for the duration of a session except
// through the reschedule overlay; Name is unique within a vendor's roster.
type Client struct {
	Name           string     `json:"name"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	Day            Weekday    `json:"day"`
	FrequencyWeeks int        `json:"frequency_weeks"`
	Type           ClientType `json:"type"`
	Vendor         string     `json:"vendor"`
	DeliveryDay    Weekday    `json:"delivery_day,omitempty"`
}

// DualCadence reports whether this client expands into separate order and
// delivery occurrences.
func (c Client) DualCadence() bool {
	return c.Type == ClientTypeWholesale && c.DeliveryDay != ""
}
