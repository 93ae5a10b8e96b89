package engine

import (
	"context"
	"fmt"

	"rutero/internal/models"
)

// VisitDetails carries the optional metadata of a complete/skip transition.
type VisitDetails struct {
	Lat  float64
	Lng  float64
	Note string
}

// Complete marks a pending occurrence completed. The status change is
// optimistic: it is applied before the backend call and reverted if the call
// fails. On success the local history record moves to today, and a committed
// dual-cadence overlay on this occurrence gets its deactivation call so it no
// longer applies on the next load.
func (e *Engine) Complete(ctx context.Context, key string, details VisitDetails) error {
	occ, err := e.findOccurrence(key)
	if err != nil {
		return err
	}
	if st := e.StatusOf(key); st != models.StatusPending {
		return fmt.Errorf("visit %s is already %s", key, st)
	}

	// First completion opens the route session.
	if !e.session.Open() {
		e.session.Start = e.clockTime()
		e.persistSession()
	}

	e.status[key] = models.StatusCompleted

	update := models.VisitUpdate{
		Vendor: e.cfg.Vendor,
		Client: occ.Client.Name,
		Day:    occ.Day,
		Date:   e.Today(),
		Week:   e.currentWeekString(),
		Status: models.StatusCompleted,
		Kind:   occ.Kind,
		Lat:    details.Lat,
		Lng:    details.Lng,
		Note:   details.Note,
	}
	if err := e.api.RecordVisit(ctx, update); err != nil {
		delete(e.status, key)
		return fmt.Errorf("failed to record visit for %s: %w", occ.Client.Name, err)
	}

	e.history[occ.Client.Name] = models.VisitRecord{
		Client: occ.Client.Name,
		Date:   e.Today(),
		Week:   e.currentWeekString(),
		Status: models.StatusCompleted,
	}

	// New completions after a finish reopen the day for re-finalizing.
	if e.session.Finished {
		e.session.Finished = false
		e.session.End = ""
		e.persistSession()
	}

	if occ.Rescheduled && occ.Client.DualCadence() {
		if overlay, ok := e.overlays[key]; ok && !overlay.Pending {
			if err := e.api.DeactivateReschedule(ctx, e.cfg.Vendor, occ.Client.Name, occ.Kind); err != nil {
				return fmt.Errorf("visit recorded but reschedule deactivation failed for %s: %w", occ.Client.Name, err)
			}
		}
	}

	return nil
}

// Skip marks a pending occurrence skipped, with the same optimistic-update
// and revert-on-failure discipline as Complete. Skipping neither opens the
// session nor touches the history record.
func (e *Engine) Skip(ctx context.Context, key string, details VisitDetails) error {
	occ, err := e.findOccurrence(key)
	if err != nil {
		return err
	}
	if st := e.StatusOf(key); st != models.StatusPending {
		return fmt.Errorf("visit %s is already %s", key, st)
	}

	e.status[key] = models.StatusSkipped

	update := models.VisitUpdate{
		Vendor: e.cfg.Vendor,
		Client: occ.Client.Name,
		Day:    occ.Day,
		Date:   e.Today(),
		Week:   e.currentWeekString(),
		Status: models.StatusSkipped,
		Kind:   occ.Kind,
		Lat:    details.Lat,
		Lng:    details.Lng,
		Note:   details.Note,
	}
	if err := e.api.RecordVisit(ctx, update); err != nil {
		delete(e.status, key)
		return fmt.Errorf("failed to record skipped visit for %s: %w", occ.Client.Name, err)
	}

	return nil
}
