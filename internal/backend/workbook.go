package backend

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"rutero/internal/logger"
	"rutero/internal/models"
	"rutero/internal/utils"
)

// Sheet names inside the workbook.
const (
	sheetClients      = "Clients"
	sheetVisits       = "Visits"
	sheetSchedule     = "Schedule"
	sheetReschedules  = "Reschedules"
	sheetPerformance  = "Performance"
	defaultFirstSheet = "Sheet1"
)

var sheetHeaders = map[string][]string{
	sheetClients:     {"Vendor", "Client", "Type", "Day", "DeliveryDay", "FrequencyWeeks", "Lat", "Lng"},
	sheetVisits:      {"ID", "Vendor", "Client", "Kind", "Day", "Date", "Week", "Status", "Lat", "Lng", "Note"},
	sheetSchedule:    {"Vendor", "Client", "Due", "Status"},
	sheetReschedules: {"ID", "Vendor", "Client", "Kind", "OriginalDay", "NewDay", "Active", "PostponedOn"},
	sheetPerformance: {"Vendor", "Date", "Day", "Start", "End", "Completed", "Skipped", "PendingLeft", "DistanceKM", "FuelLiters", "FuelCost", "Observations"},
}

// Workbook implements API against a local spreadsheet workbook. Each
// operation opens the file, acts and saves; the single-operator contract
// makes finer-grained locking unnecessary.
type Workbook struct {
	path string
}

var _ API = (*Workbook)(nil)

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// Init creates the workbook with the expected sheets and header rows if it
// does not exist yet.
func (w *Workbook) Init() error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range []string{sheetClients, sheetVisits, sheetSchedule, sheetReschedules, sheetPerformance} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		for col, header := range sheetHeaders[sheet] {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return err
			}
		}
	}
	if err := f.DeleteSheet(defaultFirstSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}
	return f, nil
}

func (w *Workbook) rows(sheet string) ([][]string, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func (w *Workbook) Roster(_ context.Context, vendor string) ([]models.Client, error) {
	rows, err := w.rows(sheetClients)
	if err != nil {
		return nil, err
	}

	var clients []models.Client
	for i, row := range rows {
		if cellAt(row, 0) != vendor {
			continue
		}
		day, err := utils.ParseWeekday(cellAt(row, 3))
		if err != nil {
			logger.Warn("Skipping client row with unknown weekday", "row", i+2, "day", cellAt(row, 3))
			continue
		}
		c := models.Client{
			Vendor:         vendor,
			Name:           cellAt(row, 1),
			Type:           models.ClientType(strings.ToLower(cellAt(row, 2))),
			Day:            day,
			FrequencyWeeks: parseIntDefault(cellAt(row, 5), 1),
			Lat:            parseFloat(cellAt(row, 6)),
			Lng:            parseFloat(cellAt(row, 7)),
		}
		if secondary := cellAt(row, 4); secondary != "" {
			if deliveryDay, err := utils.ParseWeekday(secondary); err == nil {
				c.DeliveryDay = deliveryDay
			} else {
				logger.Warn("Ignoring unknown delivery day", "client", c.Name, "day", secondary)
			}
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func (w *Workbook) VisitHistory(_ context.Context, vendor string) ([]models.VisitRecord, error) {
	rows, err := w.rows(sheetVisits)
	if err != nil {
		return nil, err
	}

	var records []models.VisitRecord
	for _, row := range rows {
		if cellAt(row, 1) != vendor {
			continue
		}
		records = append(records, models.VisitRecord{
			Client: cellAt(row, 2),
			Date:   cellAt(row, 5),
			Week:   cellAt(row, 6),
			Status: models.VisitStatus(cellAt(row, 7)),
		})
	}
	return records, nil
}

func (w *Workbook) ScheduledVisits(_ context.Context, vendor string) ([]models.ScheduledVisitRecord, error) {
	rows, err := w.rows(sheetSchedule)
	if err != nil {
		return nil, err
	}

	var records []models.ScheduledVisitRecord
	for _, row := range rows {
		if cellAt(row, 0) != vendor {
			continue
		}
		records = append(records, models.ScheduledVisitRecord{
			Client: cellAt(row, 1),
			Due:    cellAt(row, 2),
			Status: strings.ToLower(cellAt(row, 3)),
		})
	}
	return records, nil
}

func (w *Workbook) ActiveReschedules(_ context.Context, vendor string) ([]models.RescheduleOverlay, error) {
	rows, err := w.rows(sheetReschedules)
	if err != nil {
		return nil, err
	}

	var overlays []models.RescheduleOverlay
	for _, row := range rows {
		if cellAt(row, 1) != vendor || !parseBool(cellAt(row, 6)) {
			continue
		}
		originalDay, err := utils.ParseWeekday(cellAt(row, 4))
		if err != nil {
			logger.Warn("Skipping reschedule row with unknown original day", "client", cellAt(row, 2))
			continue
		}
		overlay := models.RescheduleOverlay{
			Client:      cellAt(row, 2),
			Kind:        models.VisitKind(cellAt(row, 3)),
			OriginalDay: originalDay,
			PostponedOn: cellAt(row, 7),
		}
		if newDay, err := utils.ParseWeekday(cellAt(row, 5)); err == nil {
			overlay.NewDay = newDay
		}
		overlays = append(overlays, overlay)
	}
	return overlays, nil
}

func (w *Workbook) RoutePerformance(_ context.Context, vendor string) ([]models.RoutePerformanceRecord, error) {
	rows, err := w.rows(sheetPerformance)
	if err != nil {
		return nil, err
	}

	var records []models.RoutePerformanceRecord
	for _, row := range rows {
		if cellAt(row, 0) != vendor {
			continue
		}
		record := models.RoutePerformanceRecord{
			Vendor: vendor,
			Date:   cellAt(row, 1),
			Start:  cellAt(row, 3),
			End:    cellAt(row, 4),
		}
		if day, err := utils.ParseWeekday(cellAt(row, 2)); err == nil {
			record.Day = day
		}
		records = append(records, record)
	}
	return records, nil
}

func (w *Workbook) RecordVisit(_ context.Context, update models.VisitUpdate) error {
	return w.appendRow(sheetVisits, []interface{}{
		uuid.NewString(), update.Vendor, update.Client, string(update.Kind),
		string(update.Day), update.Date, update.Week, string(update.Status), update.Lat, update.Lng, update.Note,
	})
}

func (w *Workbook) SaveReschedules(_ context.Context, vendor string, overlays []models.RescheduleOverlay) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetReschedules)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheetReschedules, err)
	}

	next := len(rows) + 1
	for _, overlay := range overlays {
		// A new row supersedes any still-active row for the same occurrence,
		// including the day-open row written when the visit entered the pool.
		for i, row := range rows {
			if i == 0 {
				continue
			}
			if cellAt(row, 1) != vendor || cellAt(row, 2) != overlay.Client || cellAt(row, 3) != string(overlay.Kind) {
				continue
			}
			if !parseBool(cellAt(row, 6)) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(7, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetReschedules, cell, false); err != nil {
				return err
			}
		}
		values := []interface{}{
			uuid.NewString(), vendor, overlay.Client, string(overlay.Kind),
			string(overlay.OriginalDay), string(overlay.NewDay), true, overlay.PostponedOn,
		}
		if err := setRow(f, sheetReschedules, next, values); err != nil {
			return err
		}
		next++
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *Workbook) DeactivateReschedule(_ context.Context, vendor, client string, kind models.VisitKind) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetReschedules)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheetReschedules, err)
	}

	found := false
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cellAt(row, 1) != vendor || cellAt(row, 2) != client || cellAt(row, 3) != string(kind) {
			continue
		}
		if !parseBool(cellAt(row, 6)) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(7, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetReschedules, cell, false); err != nil {
			return err
		}
		found = true
	}

	if !found {
		return fmt.Errorf("no active reschedule for %s (%s)", client, kind)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *Workbook) SaveRouteSummary(_ context.Context, summary models.RouteSummary) error {
	return w.appendRow(sheetPerformance, []interface{}{
		summary.Vendor, summary.Date, string(summary.Day), summary.Start, summary.End,
		summary.Completed, summary.Skipped, summary.PendingLeft,
		summary.DistanceKM, summary.FuelLiters, summary.FuelCost, summary.Observations,
	})
}

func (w *Workbook) appendRow(sheet string, values []interface{}) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, len(rows)+1, values); err != nil {
		return err
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntDefault(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "si", "sí":
		return true
	default:
		return false
	}
}
