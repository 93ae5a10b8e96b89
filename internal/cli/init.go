package cli

import (
	"fmt"

	"rutero/internal/backend"
	"rutero/internal/constants"
)

type InitCmd struct {
	Vendor   string  `help:"Vendor identity the routes belong to."`
	Workbook string  `help:"Path of the backend workbook (.xlsx)." type:"path"`
	Timezone string  `help:"IANA business timezone." default:""`
	DepotLat float64 `help:"Depot latitude (route start point)."`
	DepotLng float64 `help:"Depot longitude (route start point)."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if c.Vendor != "" {
		settings.Vendor = c.Vendor
	}
	if c.Workbook != "" {
		settings.Workbook = c.Workbook
	}
	if c.Timezone != "" {
		settings.Timezone = c.Timezone
	}
	if c.DepotLat != 0 || c.DepotLng != 0 {
		settings.DepotLat = c.DepotLat
		settings.DepotLng = c.DepotLng
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if settings.Workbook != "" {
		if err := backend.NewWorkbook(settings.Workbook).Init(); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())
	return nil
}
