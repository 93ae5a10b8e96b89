package storage

import (
	"errors"

	"rutero/internal/models"
)

// ErrNoSession is returned when no session is cached for a vendor+date key.
var ErrNoSession = errors.New("no cached session")

// Settings represents application-wide settings.
type Settings struct {
	Vendor     string  `json:"vendor"`
	Timezone   string  `json:"timezone"` // IANA name of the business timezone
	Workbook   string  `json:"workbook"` // path of the backend workbook
	DepotLat   float64 `json:"depot_lat"`
	DepotLng   float64 `json:"depot_lng"`
	FuelPrice  float64 `json:"fuel_price"`   // per liter
	KmPerLiter float64 `json:"km_per_liter"` // vehicle consumption
}

// Provider is the local session-cache store. It holds settings and the per
// vendor+business-date route session so a restart does not lose
// route-in-progress state.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Route sessions
	GetSession(vendor, date string) (models.RouteSession, error)
	SaveSession(models.RouteSession) error
	DeleteSession(vendor, date string) error

	// Utils
	GetConfigPath() string
}
