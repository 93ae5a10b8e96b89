package validation

import (
	"strings"
	"testing"

	"rutero/internal/models"
)

func cleanClient(name string) models.Client {
	return models.Client{
		Name:           name,
		Lat:            19.4,
		Lng:            -99.1,
		Day:            models.Monday,
		FrequencyWeeks: 1,
		Type:           models.ClientTypeRetail,
	}
}

func conflictTypes(result ValidationResult) map[ConflictType]int {
	types := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		types[c.Type]++
	}
	return types
}

func TestValidateRoster_Clean(t *testing.T) {
	result := New().ValidateRoster([]models.Client{cleanClient("Tienda Norte"), cleanClient("Tienda Sur")})
	if result.HasConflicts() {
		t.Errorf("clean roster should have no conflicts, got %+v", result.Conflicts)
	}
	if !strings.Contains(result.FormatReport(), "No problems") {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateRoster_DuplicateNames(t *testing.T) {
	result := New().ValidateRoster([]models.Client{cleanClient("Tienda Norte"), cleanClient("Tienda Norte")})
	if conflictTypes(result)[ConflictDuplicateClientName] != 1 {
		t.Errorf("expected a duplicate-name conflict, got %+v", result.Conflicts)
	}
}

func TestValidateRoster_MissingCoordinates(t *testing.T) {
	c := cleanClient("Tienda Norte")
	c.Lat, c.Lng = 0, 0

	result := New().ValidateRoster([]models.Client{c})
	if conflictTypes(result)[ConflictMissingCoordinates] != 1 {
		t.Errorf("expected a missing-coordinates conflict, got %+v", result.Conflicts)
	}
}

func TestValidateRoster_InvalidWeekdayAndFrequency(t *testing.T) {
	c := cleanClient("Tienda Norte")
	c.Day = "Lunes"
	c.FrequencyWeeks = 0

	types := conflictTypes(New().ValidateRoster([]models.Client{c}))
	if types[ConflictInvalidWeekday] != 1 {
		t.Error("expected an invalid-weekday conflict")
	}
	if types[ConflictInvalidFrequency] != 1 {
		t.Error("expected an invalid-frequency conflict")
	}
}

func TestValidateRoster_WholesaleWithoutDeliveryDay(t *testing.T) {
	c := cleanClient("Mayorista Centro")
	c.Type = models.ClientTypeWholesale

	result := New().ValidateRoster([]models.Client{c})
	if conflictTypes(result)[ConflictMissingDeliveryDay] != 1 {
		t.Errorf("expected a missing-delivery-day conflict, got %+v", result.Conflicts)
	}
}

func TestValidateRoster_SameCadenceDays(t *testing.T) {
	c := cleanClient("Mayorista Centro")
	c.Type = models.ClientTypeWholesale
	c.DeliveryDay = c.Day

	result := New().ValidateRoster([]models.Client{c})
	if conflictTypes(result)[ConflictSameCadenceDays] != 1 {
		t.Errorf("expected a same-cadence-days conflict, got %+v", result.Conflicts)
	}
}
