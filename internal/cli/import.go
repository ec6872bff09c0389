package cli

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/julianstephens/weekfit/internal/calsync"
	"github.com/julianstephens/weekfit/internal/constants"
)

type ImportCmd struct {
	From        string `arg:"" help:"First day of the range to import (YYYY-MM-DD or 'today')." default:"today"`
	Days        int    `short:"d" help:"Number of days to import." default:"7"`
	Credentials string `short:"c" help:"Path to Google service account credentials." type:"path" required:""`
	Calendar    string `help:"Calendar ID to import from." default:"primary"`
}

func (c *ImportCmd) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	return nil
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	from, err := parseDate(c.From)
	if err != nil {
		return err
	}
	to := from.AddDate(0, 0, c.Days-1)

	bg := context.Background()
	client, err := calsync.NewGoogleClient(bg, c.Calendar, option.WithCredentialsFile(c.Credentials))
	if err != nil {
		return err
	}

	events, err := client.ListEvents(bg, from.Format(constants.DateFormat), to.Format(constants.DateFormat))
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return err
	}

	engine := calsync.NewEngine(client, ctx.Log)
	summary := engine.Import(events, existing)

	for _, appt := range summary.Appointments {
		if err := ctx.Store.AddAppointment(appt); err != nil {
			return fmt.Errorf("failed to save imported appointment %q: %w", appt.Title, err)
		}
	}

	fmt.Printf("Imported %d appointments (%d already known, %d own exports skipped)\n",
		summary.Created, summary.SkippedExisting, summary.SkippedExported)
	return nil
}
