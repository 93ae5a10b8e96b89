package cli

import (
	"context"
	"fmt"
	"strings"

	"rutero/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	eng, err := ctx.BuildEngine(context.Background())
	if err != nil {
		return err
	}

	result := validation.New().ValidateRoster(eng.Roster())
	fmt.Println(strings.TrimRight(result.FormatReport(), "\n"))
	if result.HasConflicts() {
		return fmt.Errorf("roster has %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
