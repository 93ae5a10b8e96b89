// Package backend defines the contract to the spreadsheet-backed persistence
// API the dashboard runs against, plus its concrete implementations.
package backend

import (
	"context"

	"rutero/internal/models"
)

// API is the set of backend operations the engine consumes. All calls are
// plain request/response; the engine fans the fetches out concurrently and
// merges only once all of them resolve.
type API interface {
	// Roster returns the vendor's client roster.
	Roster(ctx context.Context, vendor string) ([]models.Client, error)

	// VisitHistory returns raw completed-visit rows; callers fold them into
	// the most-recent-per-client map.
	VisitHistory(ctx context.Context, vendor string) ([]models.VisitRecord, error)

	// ScheduledVisits returns explicit next-due rows.
	ScheduledVisits(ctx context.Context, vendor string) ([]models.ScheduledVisitRecord, error)

	// ActiveReschedules returns committed reschedule rows that are still
	// active; inactive rows never reach the overlay map.
	ActiveReschedules(ctx context.Context, vendor string) ([]models.RescheduleOverlay, error)

	// RoutePerformance returns finished-route rows used to reconcile
	// "already finished" state independent of the local cache.
	RoutePerformance(ctx context.Context, vendor string) ([]models.RoutePerformanceRecord, error)

	// RecordVisit persists a visit transition. Not idempotent against
	// duplicate submission; callers must not double-submit.
	RecordVisit(ctx context.Context, update models.VisitUpdate) error

	// SaveReschedules persists a batch of reschedule rows.
	SaveReschedules(ctx context.Context, vendor string, rows []models.RescheduleOverlay) error

	// DeactivateReschedule marks the active reschedule for the given client
	// and visit kind inactive, so it no longer applies on the next load.
	DeactivateReschedule(ctx context.Context, vendor, client string, kind models.VisitKind) error

	// SaveRouteSummary persists the route-day closing report.
	SaveRouteSummary(ctx context.Context, summary models.RouteSummary) error
}
