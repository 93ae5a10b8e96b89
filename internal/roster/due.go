package roster

import (
	"strconv"
	"time"

	"rutero/internal/constants"
	"rutero/internal/models"
	"rutero/internal/utils"
)

// DueToday decides whether an occurrence belongs in the consideration set for
// the given instant (in the business timezone). First match wins:
//
//  1. a scheduled record in "scheduled" status due exactly today
//  2. a scheduled record in "scheduled" status overdue (due on or before today)
//  3. no visit history at all (first-ever visit)
//  4. last visit completed today (kept visible for the completed view)
//  5. calendar weeks since the last visit reach the client's frequency
//
// A malformed week number in the history record counts as needing a visit;
// failures default toward showing the client, never dropping it.
func DueToday(
	occ models.VisitOccurrence,
	history map[string]models.VisitRecord,
	scheduled map[string]models.ScheduledVisitRecord,
	now time.Time,
) bool {
	today := utils.Today(now)

	if sched, ok := scheduled[occ.Client.Name]; ok && sched.Status == models.ScheduleStatusScheduled {
		if sched.Due == today {
			return true
		}
		if due, err := time.Parse(constants.DateFormat, sched.Due); err == nil {
			if !due.After(truncateToDate(now)) {
				return true
			}
		}
	}

	record, ok := history[occ.Client.Name]
	if !ok {
		return true
	}

	if record.Date == today {
		return true
	}

	lastWeek, err := strconv.Atoi(record.Week)
	if err != nil {
		return true
	}

	frequency := occ.Client.FrequencyWeeks
	if frequency < 1 {
		frequency = 1
	}

	return utils.WeeksElapsed(lastWeek, utils.WeekNumber(now)) >= frequency
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FoldHistory reduces raw completed-visit rows to the most recent completed
// visit per client.
func FoldHistory(records []models.VisitRecord) map[string]models.VisitRecord {
	history := make(map[string]models.VisitRecord)
	for _, r := range records {
		if r.Status != models.StatusCompleted {
			continue
		}
		if prev, ok := history[r.Client]; ok && prev.Date >= r.Date {
			continue
		}
		history[r.Client] = r
	}
	return history
}

// FoldSchedule reduces scheduled-visit rows to the most recent by due date
// per client.
func FoldSchedule(records []models.ScheduledVisitRecord) map[string]models.ScheduledVisitRecord {
	schedule := make(map[string]models.ScheduledVisitRecord)
	for _, r := range records {
		if prev, ok := schedule[r.Client]; ok && prev.Due >= r.Due {
			continue
		}
		schedule[r.Client] = r
	}
	return schedule
}
