package models

// VisitKind distinguishes the occurrences a client expands into.
type VisitKind string

const (
	// KindVisit is the single occurrence of an ordinary client.
	KindVisit VisitKind = "visit"
	// KindOrder and KindDelivery are the two occurrences of a dual-cadence client.
	KindOrder    VisitKind = "order"
	KindDelivery VisitKind = "delivery"
)

// VisitStatus is the session-scoped lifecycle state of one occurrence.
// Occurrences absent from the status map are pending.
type VisitStatus string

const (
	StatusPending   VisitStatus = "pending"
	StatusCompleted VisitStatus = "completed"
	StatusSkipped   VisitStatus = "skipped"
	StatusPostponed VisitStatus = "postponed"
)

// OccurrenceKey builds the composite key an occurrence is addressed by.
// Ordinary clients keep their plain name; dual-cadence occurrences carry a
// kind suffix so the order and delivery halves stay independent.
func OccurrenceKey(client string, kind VisitKind) string {
	if kind == KindVisit {
		return client
	}
	return client + "#" + string(kind)
}

// VisitOccurrence is a Client projected onto one visit kind. Day is the
// effective day: the client's assigned day unless an active reschedule
// overlay moved it.
type VisitOccurrence struct {
	Key         string    `json:"key"`
	Client      Client    `json:"client"`
	Kind        VisitKind `json:"kind"`
	Day         Weekday   `json:"day"`
	Rescheduled bool      `json:"rescheduled,omitempty"`
}

// VisitRecord is one completed-visit row from the backend. Week is kept as
// the raw upstream string; it is parsed where used and treated as "needs a
// visit" when malformed.
type VisitRecord struct {
	Client string      `json:"client"`
	Date   string      `json:"date"` // YYYY-MM-DD
	Week   string      `json:"week"`
	Status VisitStatus `json:"status"`
}

// ScheduleStatusScheduled is the only schedule status that participates in
// the due decision.
const ScheduleStatusScheduled = "scheduled"

// ScheduledVisitRecord is an explicit next-due date for a client. When
// present and still scheduled it takes precedence over the frequency fallback.
type ScheduledVisitRecord struct {
	Client string `json:"client"`
	Due    string `json:"due"` // YYYY-MM-DD
	Status string `json:"status"`
}

// RescheduleOverlay temporarily moves one occurrence to a different weekday.
// Committed overlays (Pending=false) are already persisted and take effect on
// expansion; pending overlays are queued locally until the batch commit.
type RescheduleOverlay struct {
	Client      string    `json:"client"`
	Kind        VisitKind `json:"kind"`
	OriginalDay Weekday   `json:"original_day"`
	NewDay      Weekday   `json:"new_day"`
	PostponedOn string    `json:"postponed_on,omitempty"` // YYYY-MM-DD
	Pending     bool      `json:"pending,omitempty"`
}

// Key returns the overlay's occurrence key.
func (r RescheduleOverlay) Key() string {
	return OccurrenceKey(r.Client, r.Kind)
}

// PostponeEntry parks an occurrence pulled out of its day until the operator
// chooses a target day.
type PostponeEntry struct {
	Occurrence  VisitOccurrence `json:"occurrence"`
	OriginalDay Weekday         `json:"original_day"`
	PostponedOn string          `json:"postponed_on"` // YYYY-MM-DD
}

// VisitUpdate is the payload of the visit-transition backend operation. Date
// and Week are stamped by the engine in the business timezone.
type VisitUpdate struct {
	Vendor string      `json:"vendor"`
	Client string      `json:"client"`
	Day    Weekday     `json:"day"`
	Date   string      `json:"date"` // YYYY-MM-DD
	Week   string      `json:"week"`
	Status VisitStatus `json:"status"`
	Kind   VisitKind   `json:"kind"`
	Lat    float64     `json:"lat,omitempty"`
	Lng    float64     `json:"lng,omitempty"`
	Note   string      `json:"note,omitempty"`
}

// RoutePerformanceRecord is one finished-route row from the backend. These
// are authoritative over the locally cached session.
type RoutePerformanceRecord struct {
	Vendor string  `json:"vendor"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Day    Weekday `json:"day"`
	Start  string  `json:"start"` // HH:MM
	End    string  `json:"end"`   // HH:MM
}

// RouteSummary is the route-day closing report.
type RouteSummary struct {
	Vendor       string  `json:"vendor"`
	Day          Weekday `json:"day"`
	Date         string  `json:"date"`
	Completed    int     `json:"completed"`
	Skipped      int     `json:"skipped"`
	PendingLeft  int     `json:"pending_left"`
	Start        string  `json:"start"` // HH:MM
	End          string  `json:"end"`   // HH:MM
	DistanceKM   float64 `json:"distance_km"`
	FuelLiters   float64 `json:"fuel_liters"`
	FuelCost     float64 `json:"fuel_cost"`
	Observations string  `json:"observations,omitempty"`
}
