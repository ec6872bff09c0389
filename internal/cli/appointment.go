package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/models"
)

type AppointmentAddCmd struct {
	Title       string `arg:"" help:"Appointment title."`
	Date        string `arg:"" help:"Date (YYYY-MM-DD)."`
	Time        string `short:"t" help:"Start time (HH:MM). Omit for all-day."`
	Duration    int    `short:"d" help:"Duration in minutes." default:"60"`
	Type        string `help:"Type (work|school|medical|personal|social|other). Inferred from the title when omitted."`
	Repeats     string `short:"r" help:"Comma-separated weekdays the appointment repeats on."`
	Description string `help:"Free-form description."`
}

func (c *AppointmentAddCmd) Validate() error {
	if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD", c.Date)
	}
	if c.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, c.Time); err != nil {
			return fmt.Errorf("invalid time %q, use HH:MM", c.Time)
		}
	}
	if c.Type != "" && !models.AppointmentType(c.Type).Valid() {
		return fmt.Errorf("invalid appointment type: %s", c.Type)
	}
	return nil
}

func (c *AppointmentAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	apptType := models.AppointmentType(c.Type)
	if c.Type == "" {
		apptType = models.InferAppointmentType(c.Title)
	}

	var repeats []time.Weekday
	if c.Repeats != "" {
		var err error
		repeats, err = parseWeekdays(c.Repeats)
		if err != nil {
			return err
		}
	}

	appt := models.Appointment{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Type:        apptType,
		Date:        c.Date,
		Time:        c.Time,
		DurationMin: c.Duration,
		RepeatsOn:   repeats,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	if err := ctx.Store.AddAppointment(appt); err != nil {
		return err
	}

	fmt.Printf("Added appointment: %s on %s (ID: %s)\n", appt.Title, appt.Date, appt.ID)
	return nil
}

type AppointmentListCmd struct{}

func (c *AppointmentListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	appts, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return err
	}
	if len(appts) == 0 {
		fmt.Println("No appointments found")
		return nil
	}

	fmt.Println("Appointments:")
	for _, a := range appts {
		when := a.Date + " (all day)"
		if !a.AllDay() {
			when = fmt.Sprintf("%s at %s for %dm", a.Date, a.Time, a.DurationMin)
		}
		fmt.Printf("  [%s] %s - %s\n", a.Type, a.Title, when)
		if len(a.RepeatsOn) > 0 {
			fmt.Printf("      Repeats: %s\n", formatWeekdays(a.RepeatsOn))
		}
		fmt.Printf("      ID: %s\n", a.ID)
	}

	return nil
}

type AppointmentDeleteCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *AppointmentDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	appt, err := ctx.Store.GetAppointment(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteAppointment(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted appointment: %s\n", appt.Title)
	return nil
}
