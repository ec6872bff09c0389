package cli

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/julianstephens/weekfit/internal/calsync"
	"github.com/julianstephens/weekfit/internal/constants"
)

type ExportCmd struct {
	Week        string `arg:"" help:"First day of the week to export (YYYY-MM-DD or 'today')." default:"today"`
	Credentials string `short:"c" help:"Path to Google service account credentials." type:"path" required:""`
	Calendar    string `help:"Calendar ID to export into." default:"primary"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	weekStart, err := parseDate(c.Week)
	if err != nil {
		return err
	}
	plan, err := ctx.Store.GetPlan(weekStart.Format(constants.DateFormat))
	if err != nil {
		return err
	}
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}

	bg := context.Background()
	client, err := calsync.NewGoogleClient(bg, c.Calendar, option.WithCredentialsFile(c.Credentials))
	if err != nil {
		return err
	}

	engine := calsync.NewEngine(client, ctx.Log)
	results := engine.Export(bg, &plan, activities)

	exported, failed := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Printf("  ✗ %s on %s: %v\n", res.Activity, res.Date, res.Err)
			continue
		}
		exported++
		fmt.Printf("  ✓ %s on %s\n", res.Activity, res.Date)
	}

	fmt.Printf("\nExported %d events", exported)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return nil
}
