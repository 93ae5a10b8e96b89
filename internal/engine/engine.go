// Package engine is the route-day core: it loads the vendor's data, decides
// the day's consideration set, orders pending visits, and drives every visit
// through its lifecycle. The engine holds all mutable state explicitly; there
// are no package-level maps.
package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"rutero/internal/backend"
	"rutero/internal/constants"
	"rutero/internal/geo"
	"rutero/internal/logger"
	"rutero/internal/models"
	"rutero/internal/roster"
	"rutero/internal/route"
	"rutero/internal/storage"
	"rutero/internal/utils"
)

// Config carries the per-vendor parameters the engine runs with.
type Config struct {
	Vendor     string
	Location   *time.Location // business timezone; never the device zone
	Depot      geo.Point
	FuelPrice  float64
	KmPerLiter float64
}

// Engine is single-operator and not safe for concurrent use; every action is
// driven by one UI callback at a time.
type Engine struct {
	api   backend.API
	cache storage.Provider
	cfg   Config
	now   func() time.Time

	roster   []models.Client
	history  map[string]models.VisitRecord
	schedule map[string]models.ScheduledVisitRecord
	overlays map[string]models.RescheduleOverlay
	queue    []models.RescheduleOverlay
	pool     map[string]models.PostponeEntry
	status   map[string]models.VisitStatus
	session  models.RouteSession
	day      models.Weekday
}

func New(api backend.API, cache storage.Provider, cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	e := &Engine{
		api:      api,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
		history:  make(map[string]models.VisitRecord),
		schedule: make(map[string]models.ScheduledVisitRecord),
		overlays: make(map[string]models.RescheduleOverlay),
		pool:     make(map[string]models.PostponeEntry),
		status:   make(map[string]models.VisitStatus),
	}
	e.day = e.TodayWeekday()
	return e
}

// Now returns the current instant in the business timezone.
func (e *Engine) Now() time.Time {
	return e.now().In(e.cfg.Location)
}

// Today returns today's date string in the business timezone.
func (e *Engine) Today() string {
	return utils.Today(e.Now())
}

// TodayWeekday returns today's canonical weekday in the business timezone.
func (e *Engine) TodayWeekday() models.Weekday {
	return utils.TodayWeekday(e.Now())
}

// Period returns the business period calendar position of today.
func (e *Engine) Period() utils.Period {
	return utils.PeriodOf(e.Now())
}

// Load fetches roster, history, schedule, reschedules and performance
// concurrently and merges only after all five resolve, so a partially loaded
// state is never visible.
func (e *Engine) Load(ctx context.Context) error {
	var (
		clients     []models.Client
		visits      []models.VisitRecord
		scheduled   []models.ScheduledVisitRecord
		reschedules []models.RescheduleOverlay
		performance []models.RoutePerformanceRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = e.api.Roster(gctx, e.cfg.Vendor)
		return err
	})
	g.Go(func() (err error) {
		visits, err = e.api.VisitHistory(gctx, e.cfg.Vendor)
		return err
	})
	g.Go(func() (err error) {
		scheduled, err = e.api.ScheduledVisits(gctx, e.cfg.Vendor)
		return err
	})
	g.Go(func() (err error) {
		reschedules, err = e.api.ActiveReschedules(gctx, e.cfg.Vendor)
		return err
	})
	g.Go(func() (err error) {
		performance, err = e.api.RoutePerformance(gctx, e.cfg.Vendor)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load vendor data: %w", err)
	}

	e.roster = clients
	e.history = roster.FoldHistory(visits)
	e.schedule = roster.FoldSchedule(scheduled)
	e.overlays = make(map[string]models.RescheduleOverlay, len(reschedules))
	for _, overlay := range reschedules {
		e.overlays[overlay.Key()] = overlay
	}
	e.restorePool()
	e.reconcileSession(performance)
	return nil
}

// restorePool turns active reschedule rows whose target day is still open
// back into postpone pool entries. Those rows are what Postpone persists for
// ordinary clients, so the pool survives a restart.
func (e *Engine) restorePool() {
	e.pool = make(map[string]models.PostponeEntry)
	occurrences := roster.Expand(e.roster, nil)
	for key, overlay := range e.overlays {
		if overlay.NewDay.Valid() {
			continue
		}
		for _, occ := range occurrences {
			if occ.Key == key {
				e.pool[key] = models.PostponeEntry{
					Occurrence:  occ,
					OriginalDay: overlay.OriginalDay,
					PostponedOn: overlay.PostponedOn,
				}
				break
			}
		}
		delete(e.overlays, key)
	}
}

// reconcileSession restores the cached session for today and overrides it
// with backend performance records, which are authoritative. A cached session
// whose weekday does not match today's weekday is stale and discarded.
func (e *Engine) reconcileSession(performance []models.RoutePerformanceRecord) {
	today := e.Today()
	weekday := e.TodayWeekday()

	e.session = models.RouteSession{
		Vendor: e.cfg.Vendor,
		Date:   today,
		Day:    weekday,
	}

	if cached, err := e.cache.GetSession(e.cfg.Vendor, today); err == nil {
		if cached.Day == weekday {
			e.session = cached
		} else {
			logger.Warn("Discarding cached session with mismatched weekday",
				"cached", cached.Day, "today", weekday)
			if err := e.cache.DeleteSession(e.cfg.Vendor, today); err != nil {
				logger.Warn("Failed to drop stale session", "error", err)
			}
		}
	}

	for _, record := range performance {
		if record.Date != today {
			continue
		}
		e.session.Finished = true
		if record.Start != "" {
			e.session.Start = record.Start
		}
		if record.End != "" {
			e.session.End = record.End
		}
	}
}

// Day returns the currently selected weekday.
func (e *Engine) Day() models.Weekday {
	return e.day
}

// SelectDay switches the selected weekday. Session-local visit status is
// discarded; the postpone pool survives until its entries are resolved.
func (e *Engine) SelectDay(day models.Weekday) error {
	if !day.Valid() {
		return fmt.Errorf("invalid weekday: %q", day)
	}
	if day != e.day {
		e.day = day
		e.status = make(map[string]models.VisitStatus)
	}
	return nil
}

// Occurrences expands the roster with the active overlay map applied.
func (e *Engine) Occurrences() []models.VisitOccurrence {
	return roster.Expand(e.roster, e.overlays)
}

// Roster returns the loaded client roster.
func (e *Engine) Roster() []models.Client {
	return e.roster
}

// StatusOf returns the session status of an occurrence; absence is pending.
func (e *Engine) StatusOf(key string) models.VisitStatus {
	if st, ok := e.status[key]; ok {
		return st
	}
	return models.StatusPending
}

// Session returns the current route session.
func (e *Engine) Session() models.RouteSession {
	return e.session
}

// Pool returns the unresolved postpone entries.
func (e *Engine) Pool() []models.PostponeEntry {
	entries := make([]models.PostponeEntry, 0, len(e.pool))
	for _, occ := range e.Occurrences() {
		if entry, ok := e.pool[occ.Key]; ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// PendingReschedules returns the queued dual-cadence reschedules awaiting the
// batch commit.
func (e *Engine) PendingReschedules() []models.RescheduleOverlay {
	return append([]models.RescheduleOverlay(nil), e.queue...)
}

// RouteStop is one position in the optimized pending sequence.
type RouteStop struct {
	Occurrence models.VisitOccurrence
	LegKm      float64
}

// DayView is everything the day screen renders.
type DayView struct {
	Day       models.Weekday
	Date      string // set when the view is today's weekday
	Pending   []RouteStop
	TotalKm   float64
	Completed []models.VisitOccurrence
	Skipped   []models.VisitOccurrence
	Postponed []models.VisitOccurrence
}

// View assembles the day view for the given weekday: the consideration set
// (due occurrences on that day, postpone pool excluded), partitioned by
// status, with the pending subset ordered by the route optimizer. An
// occurrence key appears in exactly one partition.
func (e *Engine) View(day models.Weekday) DayView {
	view := DayView{Day: day}
	isToday := day == e.TodayWeekday()
	if isToday {
		view.Date = e.Today()
	}
	now := e.Now()

	var pending []models.VisitOccurrence
	for _, occ := range e.Occurrences() {
		if occ.Day != day {
			continue
		}
		if _, pooled := e.pool[occ.Key]; pooled {
			view.Postponed = append(view.Postponed, occ)
			continue
		}
		if !roster.DueToday(occ, e.history, e.schedule, now) {
			continue
		}

		switch e.StatusOf(occ.Key) {
		case models.StatusCompleted:
			view.Completed = append(view.Completed, occ)
		case models.StatusSkipped:
			view.Skipped = append(view.Skipped, occ)
		default:
			// Backend history is authoritative for "already handled today".
			if isToday {
				if record, ok := e.history[occ.Client.Name]; ok && record.Date == view.Date {
					view.Completed = append(view.Completed, occ)
					continue
				}
			}
			pending = append(pending, occ)
		}
	}

	ordered := route.Order(pending, e.cfg.Depot)
	legs := route.Legs(ordered, e.cfg.Depot)
	for i, occ := range ordered {
		view.Pending = append(view.Pending, RouteStop{Occurrence: occ, LegKm: legs[i]})
	}
	view.TotalKm = route.TotalDistanceKm(ordered, e.cfg.Depot)

	return view
}

func (e *Engine) findOccurrence(key string) (models.VisitOccurrence, error) {
	for _, occ := range e.Occurrences() {
		if occ.Key == key {
			return occ, nil
		}
	}
	return models.VisitOccurrence{}, fmt.Errorf("unknown visit: %s", key)
}

func (e *Engine) persistSession() {
	e.session.UpdatedAt = e.Now().Format(time.RFC3339)
	if err := e.cache.SaveSession(e.session); err != nil {
		logger.Warn("Failed to cache route session", "error", err)
	}
}

func (e *Engine) currentWeekString() string {
	return fmt.Sprintf("%d", utils.WeekNumber(e.Now()))
}

func (e *Engine) clockTime() string {
	return e.Now().Format(constants.TimeFormat)
}

func routeDistanceOver(e *Engine, occurrences []models.VisitOccurrence) float64 {
	ordered := route.Order(occurrences, e.cfg.Depot)
	return route.TotalDistanceKm(ordered, e.cfg.Depot)
}
