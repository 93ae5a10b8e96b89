package constants

const (
	AppName           = "rutero"
	DefaultConfigPath = "~/.config/rutero/rutero.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultTimezone is the business timezone. Every "today" decision is made
	// in this zone, never in the device-local zone.
	DefaultTimezone = "America/Mexico_City"

	// DefaultRouteStart is the start time assumed when a route is finalized
	// without an explicit start action and no completion opened the session.
	DefaultRouteStart = "08:00"

	// Period calendar: thirteen four-week periods, period 1 opening January 1.
	WeeksPerPeriod = 4
	PeriodsPerYear = 13

	// Defaults for the fuel estimate in the route-day summary.
	DefaultFuelPricePerLiter = 24.0
	DefaultKmPerLiter        = 11.0
)
