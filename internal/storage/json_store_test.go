package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"rutero/internal/constants"
	"rutero/internal/models"
)

func newLoadedStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "rutero.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rutero.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("re-initialising existing storage must fail")
	}
}

func TestJSONStore_LoadWithoutInitFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "rutero.json"))
	if err := store.Load(); err == nil {
		t.Error("loading uninitialised storage must fail")
	}
}

func TestJSONStore_DefaultSettings(t *testing.T) {
	store := newLoadedStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("default timezone = %q, want %q", settings.Timezone, constants.DefaultTimezone)
	}
	if settings.FuelPrice != constants.DefaultFuelPricePerLiter {
		t.Errorf("default fuel price = %f", settings.FuelPrice)
	}
}

func TestJSONStore_SettingsRoundTrip(t *testing.T) {
	store := newLoadedStore(t)

	want := Settings{
		Vendor:     "vendor-1",
		Timezone:   "America/Mexico_City",
		Workbook:   "/tmp/routes.xlsx",
		DepotLat:   19.42,
		DepotLng:   -99.12,
		FuelPrice:  24.5,
		KmPerLiter: 11.0,
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// Re-open from disk.
	fresh := NewJSONStore(store.GetConfigPath())
	if err := fresh.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := fresh.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestJSONStore_SessionRoundTrip(t *testing.T) {
	store := newLoadedStore(t)

	session := models.RouteSession{
		Vendor:   "vendor-1",
		Date:     "2026-03-10",
		Day:      models.Tuesday,
		Start:    "08:15",
		Finished: true,
		End:      "13:40",
	}
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := store.GetSession("vendor-1", "2026-03-10")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != session {
		t.Errorf("session round trip mismatch:\n got %+v\nwant %+v", got, session)
	}

	// Sessions are keyed by vendor+date.
	if _, err := store.GetSession("vendor-2", "2026-03-10"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for another vendor, got %v", err)
	}
	if _, err := store.GetSession("vendor-1", "2026-03-11"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for another date, got %v", err)
	}
}

func TestJSONStore_DeleteSession(t *testing.T) {
	store := newLoadedStore(t)

	session := models.RouteSession{Vendor: "vendor-1", Date: "2026-03-10", Day: models.Tuesday, Start: "08:15"}
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := store.DeleteSession("vendor-1", "2026-03-10"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession("vendor-1", "2026-03-10"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after delete, got %v", err)
	}
}
