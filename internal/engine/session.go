package engine

import (
	"context"
	"fmt"

	"rutero/internal/constants"
	"rutero/internal/models"
)

// StartRoute opens today's route session explicitly.
func (e *Engine) StartRoute() error {
	if e.session.Open() {
		return fmt.Errorf("route already started at %s", e.session.Start)
	}
	e.session.Start = e.clockTime()
	e.persistSession()
	return nil
}

// FinishRoute closes today's route: it persists the route-day summary and
// marks the cached session finished. Finishing requires either at least one
// completed visit or an explicitly started session; with completions but no
// explicit start, the default start time stands in. The reported distance is
// the optimized sequence over the completed visits from the depot.
func (e *Engine) FinishRoute(ctx context.Context, observations string) (models.RouteSummary, error) {
	view := e.View(e.TodayWeekday())

	if len(view.Completed) == 0 && !e.session.Open() {
		return models.RouteSummary{}, fmt.Errorf("nothing to finish: no completed visits and the route was never started")
	}

	start := e.session.Start
	if start == "" {
		start = constants.DefaultRouteStart
	}
	end := e.clockTime()

	distance := routeDistanceOver(e, view.Completed)
	liters := 0.0
	if e.cfg.KmPerLiter > 0 {
		liters = distance / e.cfg.KmPerLiter
	}

	summary := models.RouteSummary{
		Vendor:       e.cfg.Vendor,
		Day:          view.Day,
		Date:         e.Today(),
		Completed:    len(view.Completed),
		Skipped:      len(view.Skipped),
		PendingLeft:  len(view.Pending),
		Start:        start,
		End:          end,
		DistanceKM:   distance,
		FuelLiters:   liters,
		FuelCost:     liters * e.cfg.FuelPrice,
		Observations: observations,
	}

	if err := e.api.SaveRouteSummary(ctx, summary); err != nil {
		return models.RouteSummary{}, fmt.Errorf("failed to save route summary: %w", err)
	}

	e.session.Start = start
	e.session.End = end
	e.session.Finished = true
	e.persistSession()

	return summary, nil
}
