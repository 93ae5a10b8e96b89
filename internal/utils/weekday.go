package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"rutero/internal/models"
)

// Upstream sheets carry weekday labels with accent and case variance, in
// Spanish and English, sometimes abbreviated. All of them normalize here;
// nothing past this boundary compares raw day strings.
var dayAliases = map[string]models.Weekday{
	"monday":    models.Monday,
	"mon":       models.Monday,
	"lunes":     models.Monday,
	"lun":       models.Monday,
	"tuesday":   models.Tuesday,
	"tue":       models.Tuesday,
	"martes":    models.Tuesday,
	"mar":       models.Tuesday,
	"wednesday": models.Wednesday,
	"wed":       models.Wednesday,
	"miercoles": models.Wednesday,
	"mie":       models.Wednesday,
	"thursday":  models.Thursday,
	"thu":       models.Thursday,
	"jueves":    models.Thursday,
	"jue":       models.Thursday,
	"friday":    models.Friday,
	"fri":       models.Friday,
	"viernes":   models.Friday,
	"vie":       models.Friday,
	"saturday":  models.Saturday,
	"sat":       models.Saturday,
	"sabado":    models.Saturday,
	"sab":       models.Saturday,
	"sunday":    models.Sunday,
	"sun":       models.Sunday,
	"domingo":   models.Sunday,
	"dom":       models.Sunday,
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDayLabel lowercases a weekday label and strips diacritics, so that
// "Miércoles", "MIERCOLES" and "miercoles" all compare equal.
func FoldDayLabel(s string) string {
	folded, _, err := transform.String(accentStripper, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}

// ParseWeekday normalizes an upstream weekday label into the canonical
// enumeration.
func ParseWeekday(s string) (models.Weekday, error) {
	if wd, ok := dayAliases[FoldDayLabel(s)]; ok {
		return wd, nil
	}
	return "", fmt.Errorf("invalid weekday: %q", s)
}
