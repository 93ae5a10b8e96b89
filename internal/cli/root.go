package cli

import (
	"context"
	"fmt"
	"strings"

	"rutero/internal/backend"
	"rutero/internal/engine"
	"rutero/internal/geo"
	"rutero/internal/models"
	"rutero/internal/storage"
	"rutero/internal/utils"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// BuildEngine wires the engine from stored settings, loads the vendor's data
// and returns it ready for commands to act on.
func (c *Context) BuildEngine(ctx context.Context) (*engine.Engine, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if settings.Vendor == "" {
		return nil, fmt.Errorf("no vendor configured; run 'rutero init --vendor <name> --workbook <path>'")
	}
	if settings.Workbook == "" {
		return nil, fmt.Errorf("no workbook configured; run 'rutero init --workbook <path>'")
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	eng := engine.New(backend.NewWorkbook(settings.Workbook), c.Store, engine.Config{
		Vendor:     settings.Vendor,
		Location:   loc,
		Depot:      geo.Point{Lat: settings.DepotLat, Lng: settings.DepotLng},
		FuelPrice:  settings.FuelPrice,
		KmPerLiter: settings.KmPerLiter,
	})
	if err := eng.Load(ctx); err != nil {
		return nil, err
	}
	return eng, nil
}

// ResolveDay parses a weekday argument, with "today" falling back to the
// engine's business-timezone weekday.
func ResolveDay(eng *engine.Engine, arg string) (models.Weekday, error) {
	if arg == "" || strings.EqualFold(arg, "today") {
		return eng.TodayWeekday(), nil
	}
	return utils.ParseWeekday(arg)
}

// FormatOccurrence renders an occurrence for list output.
func FormatOccurrence(occ models.VisitOccurrence) string {
	label := occ.Client.Name
	if occ.Kind != models.KindVisit {
		label = fmt.Sprintf("%s (%s)", label, occ.Kind)
	}
	if occ.Rescheduled {
		label += " [rescheduled]"
	}
	return label
}
