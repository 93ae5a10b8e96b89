package cli

import (
	"context"
	"fmt"
)

type DayCmd struct {
	Day string `arg:"" help:"Weekday to show (e.g. monday) or 'today'." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}

	day, err := ResolveDay(eng, c.Day)
	if err != nil {
		return err
	}
	if err := eng.SelectDay(day); err != nil {
		return err
	}

	view := eng.View(day)
	period := eng.Period()
	fmt.Printf("Route for %s (period %d, week %d):\n\n", day, period.Number, period.Week)

	if len(view.Pending) == 0 {
		fmt.Println("  No pending visits")
	}
	for i, stop := range view.Pending {
		fmt.Printf("%2d. %-34s %6.1f km\n", i+1, FormatOccurrence(stop.Occurrence), stop.LegKm)
	}
	if len(view.Pending) > 0 {
		fmt.Printf("\nTotal route distance: %.1f km\n", view.TotalKm)
	}

	if len(view.Completed) > 0 {
		fmt.Println("\nCompleted:")
		for _, occ := range view.Completed {
			fmt.Printf("  ✓ %s\n", FormatOccurrence(occ))
		}
	}
	if len(view.Skipped) > 0 {
		fmt.Println("\nSkipped:")
		for _, occ := range view.Skipped {
			fmt.Printf("  - %s\n", FormatOccurrence(occ))
		}
	}
	if len(view.Postponed) > 0 {
		fmt.Println("\nPostponed (awaiting a target day):")
		for _, occ := range view.Postponed {
			fmt.Printf("  → %s\n", FormatOccurrence(occ))
		}
	}

	session := eng.Session()
	if session.Finished {
		fmt.Printf("\nRoute finished (%s – %s). New completions reopen it.\n", session.Start, session.End)
	} else if session.Open() {
		fmt.Printf("\nRoute in progress since %s.\n", session.Start)
	}

	return nil
}

type ClientsCmd struct{}

func (c *ClientsCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}

	occurrences := eng.Occurrences()
	if len(occurrences) == 0 {
		fmt.Println("No clients in the roster.")
		return nil
	}

	fmt.Printf("%-30s %-10s %-10s %-6s %-10s %s\n", "CLIENT", "KIND", "DAY", "FREQ", "TYPE", "LOCATION")
	for _, occ := range occurrences {
		fmt.Printf("%-30s %-10s %-10s %4dw  %-10s %.5f,%.5f\n",
			occ.Client.Name, occ.Kind, occ.Day, occ.Client.FrequencyWeeks, occ.Client.Type,
			occ.Client.Lat, occ.Client.Lng)
	}
	return nil
}
