package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"rutero/internal/cli"
	"rutero/internal/constants"
	apperrors "rutero/internal/errors"
	"rutero/internal/logger"
	"rutero/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Mirror debug logs to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize rutero storage and the backend workbook."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive route screen." default:"1"`
	Day      cli.DayCmd      `cmd:"" help:"Show the optimized route for a day."`
	Clients  cli.ClientsCmd  `cmd:"" help:"List the roster as visit occurrences."`
	Visit    cli.VisitCmd    `cmd:"" help:"Record a visit outcome."`
	Postpone cli.PostponeCmd `cmd:"" help:"Postpone a visit and pick its new day."`
	Start    cli.StartCmd    `cmd:"" help:"Start the day's route."`
	Finish   cli.FinishCmd   `cmd:"" help:"Finish the day's route and record the summary."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check the roster for data problems."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily route planner for field vendors"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version, "config_path": constants.DefaultConfigPath},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	// Load the store before running the command (Init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
