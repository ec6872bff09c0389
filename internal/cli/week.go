package cli

import (
	"fmt"

	"github.com/julianstephens/weekfit/internal/constants"
)

type WeekCmd struct {
	Week string `arg:"" help:"First day of the week to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(ctx *Context) error {
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

	fmt.Printf("Week of %s (by %s):\n\n", plan.WeekStart, plan.GeneratedBy)
	printPlan(&plan)
	return nil
}
