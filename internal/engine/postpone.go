package engine

import (
	"context"
	"fmt"

	"rutero/internal/logger"
	"rutero/internal/models"
)

// Postpone pulls a pending occurrence out of its day into the postpone pool,
// where it waits for a target day. For ordinary clients the backend
// reschedule row is persisted immediately, target day still open; for
// dual-cadence clients nothing is persisted until the target day is chosen
// and the pending queue is committed.
func (e *Engine) Postpone(ctx context.Context, key string) error {
	occ, err := e.findOccurrence(key)
	if err != nil {
		return err
	}
	if st := e.StatusOf(key); st != models.StatusPending {
		return fmt.Errorf("visit %s is already %s", key, st)
	}

	entry := models.PostponeEntry{
		Occurrence:  occ,
		OriginalDay: occ.Day,
		PostponedOn: e.Today(),
	}
	e.pool[key] = entry
	e.status[key] = models.StatusPostponed

	if !occ.Client.DualCadence() {
		row := models.RescheduleOverlay{
			Client:      occ.Client.Name,
			Kind:        occ.Kind,
			OriginalDay: occ.Day,
			PostponedOn: entry.PostponedOn,
			// NewDay stays open until the operator chooses a target.
		}
		if err := e.api.SaveReschedules(ctx, e.cfg.Vendor, []models.RescheduleOverlay{row}); err != nil {
			delete(e.pool, key)
			delete(e.status, key)
			return fmt.Errorf("failed to postpone %s: %w", occ.Client.Name, err)
		}
	}

	return nil
}

// ChooseTargetDay resolves a pool entry onto a target weekday. Ordinary
// clients get a committed overlay and an immediate persist call; dual-cadence
// clients get a pending overlay queued for the batch commit, reflected in the
// active map right away so the view shows it. Either way the entry leaves the
// pool and its status clears, making it an ordinary pending visit under the
// new day.
//
// A key without a pool entry is a referential inconsistency: logged, no-op.
func (e *Engine) ChooseTargetDay(ctx context.Context, key string, target models.Weekday) error {
	entry, ok := e.pool[key]
	if !ok {
		logger.Warn("Target day chosen for a visit that is not postponed", "key", key)
		return nil
	}
	if !target.Valid() {
		return fmt.Errorf("invalid weekday: %q", target)
	}

	occ := entry.Occurrence
	overlay := models.RescheduleOverlay{
		Client:      occ.Client.Name,
		Kind:        occ.Kind,
		OriginalDay: entry.OriginalDay,
		NewDay:      target,
		PostponedOn: entry.PostponedOn,
	}

	if occ.Client.DualCadence() {
		overlay.Pending = true
		e.queueReschedule(overlay)
		e.overlays[key] = overlay
		delete(e.pool, key)
		delete(e.status, key)
		return nil
	}

	e.overlays[key] = overlay
	delete(e.pool, key)
	delete(e.status, key)

	if err := e.api.SaveReschedules(ctx, e.cfg.Vendor, []models.RescheduleOverlay{overlay}); err != nil {
		delete(e.overlays, key)
		e.pool[key] = entry
		e.status[key] = models.StatusPostponed
		return fmt.Errorf("failed to reschedule %s: %w", occ.Client.Name, err)
	}

	return nil
}

// queueReschedule replaces any queued entry for the same occurrence key.
func (e *Engine) queueReschedule(overlay models.RescheduleOverlay) {
	for i, queued := range e.queue {
		if queued.Key() == overlay.Key() {
			e.queue[i] = overlay
			return
		}
	}
	e.queue = append(e.queue, overlay)
}

// CommitPendingReschedules sends the queued dual-cadence reschedules in one
// batch. On success the queue clears and the authoritative overlay set is
// re-fetched; on failure the queue is retained for retry. These overlays are
// temporary: they self-revert once the moved visit completes.
func (e *Engine) CommitPendingReschedules(ctx context.Context) (int, error) {
	if len(e.queue) == 0 {
		return 0, nil
	}

	count := len(e.queue)
	if err := e.api.SaveReschedules(ctx, e.cfg.Vendor, e.queue); err != nil {
		return 0, fmt.Errorf("failed to commit pending reschedules: %w", err)
	}
	e.queue = nil

	active, err := e.api.ActiveReschedules(ctx, e.cfg.Vendor)
	if err != nil {
		return count, fmt.Errorf("reschedules committed but refresh failed: %w", err)
	}
	e.overlays = make(map[string]models.RescheduleOverlay, len(active))
	for _, overlay := range active {
		e.overlays[overlay.Key()] = overlay
	}

	return count, nil
}
