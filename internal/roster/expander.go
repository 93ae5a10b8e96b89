// Package roster turns the raw client roster into the week's visit
// occurrences and decides which of them are due on a given day.
package roster

import "rutero/internal/models"

// Expand produces the effective visit occurrences for the week. Dual-cadence
// clients emit an order occurrence on their primary day and a delivery
// occurrence on their delivery day; everyone else emits exactly one. An
// active overlay whose kind matches substitutes its target day.
//
// Expansion is idempotent: the same roster and overlay map always yield the
// same occurrence set, effective days and emission order.
func Expand(clients []models.Client, overlays map[string]models.RescheduleOverlay) []models.VisitOccurrence {
	occurrences := make([]models.VisitOccurrence, 0, len(clients))

	for _, c := range clients {
		if c.DualCadence() {
			occurrences = append(occurrences,
				applyOverlay(models.VisitOccurrence{
					Key:    models.OccurrenceKey(c.Name, models.KindOrder),
					Client: c,
					Kind:   models.KindOrder,
					Day:    c.Day,
				}, overlays),
				applyOverlay(models.VisitOccurrence{
					Key:    models.OccurrenceKey(c.Name, models.KindDelivery),
					Client: c,
					Kind:   models.KindDelivery,
					Day:    c.DeliveryDay,
				}, overlays),
			)
			continue
		}

		occurrences = append(occurrences, applyOverlay(models.VisitOccurrence{
			Key:    models.OccurrenceKey(c.Name, models.KindVisit),
			Client: c,
			Kind:   models.KindVisit,
			Day:    c.Day,
		}, overlays))
	}

	return occurrences
}

func applyOverlay(occ models.VisitOccurrence, overlays map[string]models.RescheduleOverlay) models.VisitOccurrence {
	overlay, ok := overlays[occ.Key]
	if !ok || overlay.Kind != occ.Kind {
		return occ
	}
	if !overlay.NewDay.Valid() {
		// A postponed occurrence awaiting its target day keeps its own day.
		return occ
	}
	occ.Day = overlay.NewDay
	occ.Rescheduled = true
	return occ
}
