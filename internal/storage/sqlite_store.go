package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"rutero/internal/constants"
	"rutero/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
	vendor TEXT NOT NULL,
	date TEXT NOT NULL,
	day TEXT NOT NULL,
	start_time TEXT,
	finished INTEGER NOT NULL DEFAULT 0,
	end_time TEXT,
	updated_at TEXT,
	PRIMARY KEY (vendor, date)
);`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

var _ Provider = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := Settings{
			Timezone:   constants.DefaultTimezone,
			FuelPrice:  constants.DefaultFuelPricePerLiter,
			KmPerLiter: constants.DefaultKmPerLiter,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "vendor":
			settings.Vendor = value
		case "timezone":
			settings.Timezone = value
		case "workbook":
			settings.Workbook = value
		case "depot_lat":
			fmt.Sscanf(value, "%f", &settings.DepotLat)
		case "depot_lng":
			fmt.Sscanf(value, "%f", &settings.DepotLng)
		case "fuel_price":
			fmt.Sscanf(value, "%f", &settings.FuelPrice)
		case "km_per_liter":
			fmt.Sscanf(value, "%f", &settings.KmPerLiter)
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	pairs := []struct {
		key   string
		value string
	}{
		{"vendor", settings.Vendor},
		{"timezone", settings.Timezone},
		{"workbook", settings.Workbook},
		{"depot_lat", fmt.Sprintf("%g", settings.DepotLat)},
		{"depot_lng", fmt.Sprintf("%g", settings.DepotLng)},
		{"fuel_price", fmt.Sprintf("%g", settings.FuelPrice)},
		{"km_per_liter", fmt.Sprintf("%g", settings.KmPerLiter)},
	}
	for _, p := range pairs {
		if _, err := stmt.Exec(p.key, p.value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSession(vendor, date string) (models.RouteSession, error) {
	row := s.db.QueryRow(`
		SELECT vendor, date, day, start_time, finished, end_time, updated_at
		FROM sessions WHERE vendor = ? AND date = ?`, vendor, date)

	var session models.RouteSession
	var start, end, updatedAt sql.NullString
	err := row.Scan(&session.Vendor, &session.Date, &session.Day, &start, &session.Finished, &end, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.RouteSession{}, ErrNoSession
		}
		return models.RouteSession{}, err
	}

	session.Start = start.String
	session.End = end.String
	session.UpdatedAt = updatedAt.String
	return session, nil
}

func (s *SQLiteStore) SaveSession(session models.RouteSession) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sessions (vendor, date, day, start_time, finished, end_time, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.Vendor, session.Date, string(session.Day),
		session.Start, session.Finished, session.End, session.UpdatedAt,
	)
	return err
}

func (s *SQLiteStore) DeleteSession(vendor, date string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE vendor = ? AND date = ?", vendor, date)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
