package cli

import (
	"context"
	"fmt"

	"rutero/internal/models"
	"rutero/internal/utils"
)

type PostponeCmd struct {
	Client string `arg:"" optional:"" help:"Client to move into the postpone pool."`
	Kind   string `help:"Occurrence kind for dual-cadence clients (visit, order, delivery)." default:"visit"`

	Target TargetCmd `cmd:"" help:"Choose a new day for a postponed visit."`
	List   PoolCmd   `cmd:"" help:"Show the postpone pool."`
}

func (c *PostponeCmd) Run(ctx *Context) error {
	if c.Client == "" {
		return fmt.Errorf("missing client name")
	}
	eng, key, err := resolveVisit(ctx, c.Client, c.Kind)
	if err != nil {
		return err
	}
	if err := eng.Postpone(context.Background(), key); err != nil {
		return err
	}
	fmt.Printf("Postponed: %s. Pick a day with 'rutero postpone target %s <day>'.\n", c.Client, c.Client)
	return nil
}

type TargetCmd struct {
	Client string `arg:"" help:"Postponed client."`
	Day    string `arg:"" help:"Weekday the visit should move to."`
	Kind   string `help:"Occurrence kind for dual-cadence clients (visit, order, delivery)." default:"visit"`
}

func (c *TargetCmd) Run(ctx *Context) error {
	eng, key, err := resolveVisit(ctx, c.Client, c.Kind)
	if err != nil {
		return err
	}
	day, err := utils.ParseWeekday(c.Day)
	if err != nil {
		return err
	}
	if err := eng.ChooseTargetDay(context.Background(), key, day); err != nil {
		return err
	}
	// Dual-cadence moves only queue in memory; a one-shot command has to
	// flush them before exit or they are lost.
	if _, err := eng.CommitPendingReschedules(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Rescheduled %s → %s.\n", c.Client, day)
	return nil
}

type PoolCmd struct{}

func (c *PoolCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}
	pool := eng.Pool()
	if len(pool) == 0 {
		fmt.Println("Postpone pool is empty.")
		return nil
	}
	for _, entry := range pool {
		fmt.Println(formatPoolEntry(entry))
	}
	return nil
}

func formatPoolEntry(entry models.PostponeEntry) string {
	return fmt.Sprintf("  → %s (%s, from %s)", entry.Occurrence.Client.Name, entry.Occurrence.Kind, entry.OriginalDay)
}
