package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rutero/internal/constants"
	"rutero/internal/models"
)

type jsonStore struct {
	Version  int                            `json:"version"`
	Settings Settings                       `json:"settings"`
	Sessions map[string]models.RouteSession `json:"sessions"` // keyed "vendor|date"
}

// JSONStore is a plain-file alternative to the SQLite provider, selected by a
// .json config extension.
type JSONStore struct {
	path  string
	store *jsonStore
}

var _ Provider = (*JSONStore)(nil)

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func sessionKey(vendor, date string) string {
	return vendor + "|" + date
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonStore{
		Version: 1,
		Settings: Settings{
			Timezone:   constants.DefaultTimezone,
			FuelPrice:  constants.DefaultFuelPricePerLiter,
			KmPerLiter: constants.DefaultKmPerLiter,
		},
		Sessions: make(map[string]models.RouteSession),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Sessions == nil {
		s.store.Sessions = make(map[string]models.RouteSession)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetSession(vendor, date string) (models.RouteSession, error) {
	if s.store == nil {
		return models.RouteSession{}, fmt.Errorf("storage not loaded")
	}
	session, ok := s.store.Sessions[sessionKey(vendor, date)]
	if !ok {
		return models.RouteSession{}, ErrNoSession
	}
	return session, nil
}

func (s *JSONStore) SaveSession(session models.RouteSession) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Sessions[sessionKey(session.Vendor, session.Date)] = session
	return s.save()
}

func (s *JSONStore) DeleteSession(vendor, date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Sessions, sessionKey(vendor, date))
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
