package cli

import (
	"context"
	"fmt"

	"rutero/internal/engine"
	"rutero/internal/models"
)

type VisitCmd struct {
	Done VisitDoneCmd `cmd:"" help:"Mark a visit completed."`
	Skip VisitSkipCmd `cmd:"" help:"Mark a visit skipped for today."`
}

type VisitDoneCmd struct {
	Client string  `arg:"" help:"Client name."`
	Kind   string  `help:"Occurrence kind for dual-cadence clients (visit, order, delivery)." default:"visit"`
	Lat    float64 `help:"Latitude observed at the visit."`
	Lng    float64 `help:"Longitude observed at the visit."`
	Note   string  `help:"Free-form note for the visit record."`
}

func (c *VisitDoneCmd) Run(ctx *Context) error {
	eng, key, err := resolveVisit(ctx, c.Client, c.Kind)
	if err != nil {
		return err
	}
	if err := eng.Complete(context.Background(), key, engine.VisitDetails{Lat: c.Lat, Lng: c.Lng, Note: c.Note}); err != nil {
		return err
	}
	fmt.Printf("Completed: %s\n", c.Client)
	return nil
}

type VisitSkipCmd struct {
	Client string `arg:"" help:"Client name."`
	Kind   string `help:"Occurrence kind for dual-cadence clients (visit, order, delivery)." default:"visit"`
	Note   string `help:"Reason for skipping."`
}

func (c *VisitSkipCmd) Run(ctx *Context) error {
	eng, key, err := resolveVisit(ctx, c.Client, c.Kind)
	if err != nil {
		return err
	}
	if err := eng.Skip(context.Background(), key, engine.VisitDetails{Note: c.Note}); err != nil {
		return err
	}
	fmt.Printf("Skipped: %s\n", c.Client)
	return nil
}

func resolveVisit(ctx *Context, client, kind string) (*engine.Engine, string, error) {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return nil, "", err
	}
	k, err := parseKind(kind)
	if err != nil {
		return nil, "", err
	}
	return eng, models.OccurrenceKey(client, k), nil
}

func parseKind(s string) (models.VisitKind, error) {
	switch models.VisitKind(s) {
	case models.KindVisit, "":
		return models.KindVisit, nil
	case models.KindOrder:
		return models.KindOrder, nil
	case models.KindDelivery:
		return models.KindDelivery, nil
	default:
		return "", fmt.Errorf("unknown visit kind %q (expected visit, order or delivery)", s)
	}
}
