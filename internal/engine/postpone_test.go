package engine

import (
	"context"
	"errors"
	"testing"

	"rutero/internal/backend"
	"rutero/internal/models"
)

func TestPostpone_MovesToPoolAndPersists(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Tienda Norte"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}

	view := eng.View(models.Tuesday)
	if containsKey(pendingKeys(view), "Tienda Norte") {
		t.Error("a postponed visit must leave the pending route")
	}
	if len(view.Postponed) != 1 || view.Postponed[0].Key != "Tienda Norte" {
		t.Errorf("expected the visit in the postponed section, got %+v", view.Postponed)
	}

	// Ordinary clients persist a day-open reschedule row right away.
	if len(m.SavedBatches) != 1 {
		t.Fatalf("expected one persisted batch, got %d", len(m.SavedBatches))
	}
	row := m.SavedBatches[0][0]
	if row.Client != "Tienda Norte" || row.NewDay != "" {
		t.Errorf("expected a day-open row for the postponed client, got %+v", row)
	}
}

func TestPostpone_DualCadencePersistsNothing(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Mayorista Centro#order"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if len(m.SavedBatches) != 0 {
		t.Error("dual-cadence postpones must not touch the backend before commit")
	}
}

func TestPostpone_FailureReverts(t *testing.T) {
	m := &backend.Memory{Clients: testRoster(), FailSaveReschedules: errors.New("sheet locked")}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Tienda Norte"); err == nil {
		t.Fatal("expected an error")
	}
	if len(eng.Pool()) != 0 {
		t.Error("a failed postpone must leave the pool empty")
	}
	if !containsKey(pendingKeys(eng.View(models.Tuesday)), "Tienda Norte") {
		t.Error("the visit must stay pending")
	}
}

func TestPostpone_SurvivesReload(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Tienda Norte"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}

	// A fresh engine over the same backend rebuilds the pool from the
	// day-open reschedule rows.
	fresh := newTestEngine(t, m)
	pool := fresh.Pool()
	if len(pool) != 1 || pool[0].Occurrence.Key != "Tienda Norte" {
		t.Errorf("expected the pool restored after reload, got %+v", pool)
	}
	if pool[0].PostponedOn != "2026-03-10" {
		t.Errorf("expected the postponed-on date restored, got %q", pool[0].PostponedOn)
	}
}

func TestChooseTargetDay_OrdinaryMovesImmediately(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Tienda Norte"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Tienda Norte", models.Friday); err != nil {
		t.Fatalf("ChooseTargetDay failed: %v", err)
	}

	tue := eng.View(models.Tuesday)
	fri := eng.View(models.Friday)
	if containsKey(pendingKeys(tue), "Tienda Norte") || len(tue.Postponed) != 0 {
		t.Error("the visit must fully leave its original day")
	}
	if !containsKey(pendingKeys(fri), "Tienda Norte") {
		t.Error("the visit must appear pending on its target day")
	}
	if len(eng.PendingReschedules()) != 0 {
		t.Error("ordinary reschedules never queue")
	}
	if len(m.SavedBatches) != 2 { // postpone row + targeted row
		t.Errorf("expected the targeted overlay persisted, got %d batches", len(m.SavedBatches))
	}
	if len(m.Reschedules) != 1 || m.Reschedules[0].NewDay != models.Friday {
		t.Errorf("the targeted row must supersede the day-open row, got %+v", m.Reschedules)
	}
}

func TestChooseTargetDay_FailureRestoresPool(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Tienda Norte"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	m.FailSaveReschedules = errors.New("sheet locked")

	if err := eng.ChooseTargetDay(context.Background(), "Tienda Norte", models.Friday); err == nil {
		t.Fatal("expected an error")
	}
	if len(eng.Pool()) != 1 {
		t.Error("a failed reschedule must put the entry back in the pool")
	}
	if containsKey(pendingKeys(eng.View(models.Friday)), "Tienda Norte") {
		t.Error("the visit must not appear on the target day after a failure")
	}
}

func TestChooseTargetDay_DualCadenceQueues(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Mayorista Centro#delivery"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Mayorista Centro#delivery", models.Friday); err != nil {
		t.Fatalf("ChooseTargetDay failed: %v", err)
	}

	if len(m.SavedBatches) != 0 {
		t.Error("dual-cadence moves must not persist before the commit")
	}
	queued := eng.PendingReschedules()
	if len(queued) != 1 || queued[0].NewDay != models.Friday || !queued[0].Pending {
		t.Errorf("expected one pending queued overlay, got %+v", queued)
	}
	// The move is reflected locally right away.
	if !containsKey(pendingKeys(eng.View(models.Friday)), "Mayorista Centro#delivery") {
		t.Error("the queued move must already show on the target day")
	}
}

func TestChooseTargetDay_ReplacesQueuedEntry(t *testing.T) {
	eng := newTestEngine(t, &backend.Memory{Clients: testRoster()})

	if err := eng.Postpone(context.Background(), "Mayorista Centro#delivery"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Mayorista Centro#delivery", models.Friday); err != nil {
		t.Fatalf("ChooseTargetDay failed: %v", err)
	}

	// Re-postpone and pick a different day; the queue must not grow.
	if err := eng.Postpone(context.Background(), "Mayorista Centro#delivery"); err != nil {
		t.Fatalf("second Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Mayorista Centro#delivery", models.Saturday); err != nil {
		t.Fatalf("second ChooseTargetDay failed: %v", err)
	}

	queued := eng.PendingReschedules()
	if len(queued) != 1 || queued[0].NewDay != models.Saturday {
		t.Errorf("expected a single replaced queue entry, got %+v", queued)
	}
}

func TestChooseTargetDay_NotPostponedIsNoOp(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.ChooseTargetDay(context.Background(), "Tienda Norte", models.Friday); err != nil {
		t.Fatalf("expected a silent no-op, got %v", err)
	}
	if len(m.SavedBatches) != 0 {
		t.Error("nothing must be persisted for a visit that is not postponed")
	}
	if containsKey(pendingKeys(eng.View(models.Friday)), "Tienda Norte") {
		t.Error("the visit must stay on its own day")
	}
}

func TestCommitPendingReschedules(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Mayorista Centro#delivery"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Mayorista Centro#delivery", models.Friday); err != nil {
		t.Fatalf("ChooseTargetDay failed: %v", err)
	}

	n, err := eng.CommitPendingReschedules(context.Background())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 committed reschedule, got %d", n)
	}
	if len(eng.PendingReschedules()) != 0 {
		t.Error("the queue must clear after a successful commit")
	}
	if len(m.SavedBatches) != 1 || len(m.SavedBatches[0]) != 1 {
		t.Errorf("expected one batch of one row, got %+v", m.SavedBatches)
	}

	// An empty queue commits as a no-op.
	if n, err := eng.CommitPendingReschedules(context.Background()); n != 0 || err != nil {
		t.Errorf("empty commit = (%d, %v), want (0, nil)", n, err)
	}
}

func TestCommitPendingReschedules_FailureKeepsQueue(t *testing.T) {
	m := &backend.Memory{Clients: testRoster()}
	eng := newTestEngine(t, m)

	if err := eng.Postpone(context.Background(), "Mayorista Centro#delivery"); err != nil {
		t.Fatalf("Postpone failed: %v", err)
	}
	if err := eng.ChooseTargetDay(context.Background(), "Mayorista Centro#delivery", models.Friday); err != nil {
		t.Fatalf("ChooseTargetDay failed: %v", err)
	}

	m.FailSaveReschedules = errors.New("sheet locked")
	if _, err := eng.CommitPendingReschedules(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(eng.PendingReschedules()) != 1 {
		t.Error("a failed commit must retain the queue for retry")
	}
}
