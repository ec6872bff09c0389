package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekfit/internal/cli"
	"github.com/julianstephens/weekfit/internal/logging"
	"github.com/julianstephens/weekfit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/weekfit/weekfit.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd   `cmd:"" help:"Initialize weekfit storage."`
	Tui      cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Plan     cli.PlanCmd   `cmd:"" help:"Generate a weekly activity plan."`
	Week     cli.WeekCmd   `cmd:"" help:"Show the plan for a week."`
	Export   cli.ExportCmd `cmd:"" help:"Export a weekly plan to a calendar."`
	Import   cli.ImportCmd `cmd:"" help:"Import calendar events as appointments."`
	Activity struct {
		Add    cli.ActivityAddCmd    `cmd:"" help:"Add a new activity."`
		List   cli.ActivityListCmd   `cmd:"" help:"List all activities."`
		Delete cli.ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
	} `cmd:"" help:"Manage activities."`
	Appointment struct {
		Add    cli.AppointmentAddCmd    `cmd:"" help:"Add a new appointment."`
		List   cli.AppointmentListCmd   `cmd:"" help:"List all appointments."`
		Delete cli.AppointmentDeleteCmd `cmd:"" help:"Delete an appointment."`
	} `cmd:"" help:"Manage appointments."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a database backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a database backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("weekfit"),
		kong.Description("Weekly activity scheduler with weather, readiness and calendar awareness"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	log := logging.Nop()
	if CLI.Debug {
		var err error
		log, err = logging.New(true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Log:   log,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
