package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

type StartCmd struct{}

func (c *StartCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}
	if err := eng.StartRoute(); err != nil {
		return err
	}
	fmt.Printf("Route started at %s.\n", eng.Session().Start)
	return nil
}

type FinishCmd struct {
	Observations string `help:"Closing note for the day's summary."`
	NoPrompt     bool   `help:"Skip the interactive observations prompt."`
}

func (c *FinishCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}

	if c.Observations == "" && !c.NoPrompt {
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Observations").
				Description("Anything worth remembering about today's route?").
				Value(&c.Observations),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	summary, err := eng.FinishRoute(context.Background(), c.Observations)
	if err != nil {
		return err
	}

	fmt.Printf("Route finished: %s – %s\n", summary.Start, summary.End)
	fmt.Printf("  Completed: %d  Skipped: %d  Pending left: %d\n",
		summary.Completed, summary.Skipped, summary.PendingLeft)
	fmt.Printf("  Distance: %.1f km  Fuel: %.1f L (≈ $%.2f)\n",
		summary.DistanceKM, summary.FuelLiters, summary.FuelCost)
	return nil
}
