// Package validation checks the roster for data problems worth surfacing to
// the operator before they bite the route.
package validation

import (
	"fmt"

	"rutero/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateClientName ConflictType = "duplicate_client_name"
	ConflictMissingCoordinates  ConflictType = "missing_coordinates"
	ConflictInvalidWeekday      ConflictType = "invalid_weekday"
	ConflictInvalidFrequency    ConflictType = "invalid_frequency"
	ConflictMissingDeliveryDay  ConflictType = "missing_delivery_day"
	ConflictSameCadenceDays     ConflictType = "same_cadence_days"
)

// Conflict represents a detected problem in the roster
type Conflict struct {
	Type        ConflictType
	Description string
	Clients     []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	report := "Problems detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates the client roster
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRoster checks the roster for duplicate names, unusable coordinates,
// invalid days and frequencies, and half-configured dual-cadence clients.
func (v *Validator) ValidateRoster(clients []models.Client) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]int)
	for _, c := range clients {
		seen[c.Name]++
	}
	for name, count := range seen {
		if count > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateClientName,
				Description: fmt.Sprintf("client name %q appears %d times; occurrence keys collide", name, count),
				Clients:     []string{name},
			})
		}
	}

	for _, c := range clients {
		if c.Lat == 0 && c.Lng == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingCoordinates,
				Description: fmt.Sprintf("client %q has no coordinates; it will sort from the null island", c.Name),
				Clients:     []string{c.Name},
			})
		}
		if !c.Day.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("client %q has an invalid visit day %q", c.Name, c.Day),
				Clients:     []string{c.Name},
			})
		}
		if c.FrequencyWeeks < 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidFrequency,
				Description: fmt.Sprintf("client %q has visit frequency %d; expected at least 1 week", c.Name, c.FrequencyWeeks),
				Clients:     []string{c.Name},
			})
		}
		if c.Type == models.ClientTypeWholesale && c.DeliveryDay == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingDeliveryDay,
				Description: fmt.Sprintf("wholesale client %q has no delivery day; it will get a single visit", c.Name),
				Clients:     []string{c.Name},
			})
		}
		if c.DualCadence() && c.Day == c.DeliveryDay {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSameCadenceDays,
				Description: fmt.Sprintf("client %q has order and delivery on the same day (%s)", c.Name, c.Day),
				Clients:     []string{c.Name},
			})
		}
	}

	return result
}
