package backend

import (
	"context"
	"fmt"

	"rutero/internal/models"
)

// Memory is an in-memory API used by tests and demo data. Failure fields
// force the corresponding operation to error, for exercising the
// optimistic-update rollback paths.
type Memory struct {
	Clients      []models.Client
	Visits       []models.VisitRecord
	Schedule     []models.ScheduledVisitRecord
	Reschedules  []models.RescheduleOverlay
	Performance  []models.RoutePerformanceRecord
	Deactivated  []string // "client#kind" in call order
	Summaries    []models.RouteSummary
	SavedBatches [][]models.RescheduleOverlay

	FailRecordVisit     error
	FailSaveReschedules error
	FailDeactivate      error
	FailSaveSummary     error
}

var _ API = (*Memory)(nil)

func (m *Memory) Roster(_ context.Context, vendor string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range m.Clients {
		if c.Vendor == vendor {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) VisitHistory(_ context.Context, _ string) ([]models.VisitRecord, error) {
	return append([]models.VisitRecord(nil), m.Visits...), nil
}

func (m *Memory) ScheduledVisits(_ context.Context, _ string) ([]models.ScheduledVisitRecord, error) {
	return append([]models.ScheduledVisitRecord(nil), m.Schedule...), nil
}

func (m *Memory) ActiveReschedules(_ context.Context, _ string) ([]models.RescheduleOverlay, error) {
	return append([]models.RescheduleOverlay(nil), m.Reschedules...), nil
}

func (m *Memory) RoutePerformance(_ context.Context, _ string) ([]models.RoutePerformanceRecord, error) {
	return append([]models.RoutePerformanceRecord(nil), m.Performance...), nil
}

func (m *Memory) RecordVisit(_ context.Context, update models.VisitUpdate) error {
	if m.FailRecordVisit != nil {
		return m.FailRecordVisit
	}
	m.Visits = append(m.Visits, models.VisitRecord{
		Client: update.Client,
		Date:   update.Date,
		Week:   update.Week,
		Status: update.Status,
	})
	return nil
}

func (m *Memory) SaveReschedules(_ context.Context, _ string, rows []models.RescheduleOverlay) error {
	if m.FailSaveReschedules != nil {
		return m.FailSaveReschedules
	}
	m.SavedBatches = append(m.SavedBatches, append([]models.RescheduleOverlay(nil), rows...))
	for _, r := range rows {
		// Mirrors the workbook: a new row supersedes any active row for
		// the same occurrence.
		kept := m.Reschedules[:0]
		for _, old := range m.Reschedules {
			if old.Client == r.Client && old.Kind == r.Kind {
				continue
			}
			kept = append(kept, old)
		}
		m.Reschedules = kept
		m.Reschedules = append(m.Reschedules, models.RescheduleOverlay{
			Client:      r.Client,
			Kind:        r.Kind,
			OriginalDay: r.OriginalDay,
			NewDay:      r.NewDay,
			PostponedOn: r.PostponedOn,
		})
	}
	return nil
}

func (m *Memory) DeactivateReschedule(_ context.Context, _ string, client string, kind models.VisitKind) error {
	if m.FailDeactivate != nil {
		return m.FailDeactivate
	}
	m.Deactivated = append(m.Deactivated, fmt.Sprintf("%s#%s", client, kind))
	kept := m.Reschedules[:0]
	for _, r := range m.Reschedules {
		if r.Client == client && r.Kind == kind {
			continue
		}
		kept = append(kept, r)
	}
	m.Reschedules = kept
	return nil
}

func (m *Memory) SaveRouteSummary(_ context.Context, summary models.RouteSummary) error {
	if m.FailSaveSummary != nil {
		return m.FailSaveSummary
	}
	m.Summaries = append(m.Summaries, summary)
	m.Performance = append(m.Performance, models.RoutePerformanceRecord{
		Vendor: summary.Vendor,
		Date:   summary.Date,
		Day:    summary.Day,
		Start:  summary.Start,
		End:    summary.End,
	})
	return nil
}
