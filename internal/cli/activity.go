package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekfit/internal/models"
)

type ActivityAddCmd struct {
	Name        string `arg:"" help:"Activity name."`
	Duration    int    `short:"d" help:"Duration in minutes." default:"60"`
	Intensity   string `short:"i" help:"Intensity (low|medium|high|very_high)." default:"medium"`
	Location    string `short:"l" help:"Where the activity happens."`
	Description string `help:"Free-form description."`
	Time        string `short:"t" help:"Preferred time of day (any|morning|afternoon|evening|night)." default:"any"`
	Days        string `short:"w" help:"Comma-separated weekdays the activity is allowed on."`
	GoodWeather bool   `short:"g" help:"Only schedule in good weather."`
}

func (c *ActivityAddCmd) Validate() error {
	if !models.Intensity(c.Intensity).Valid() {
		return fmt.Errorf("invalid intensity: %s", c.Intensity)
	}
	if !models.TimeOfDay(c.Time).Valid() {
		return fmt.Errorf("invalid time of day: %s", c.Time)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var days []time.Weekday
	if c.Days != "" {
		var err error
		days, err = parseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	var deps []string
	if c.GoodWeather {
		deps = append(deps, models.DependencyGoodWeather)
	}

	activity := models.Activity{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(c.Name),
		Location:      c.Location,
		Description:   c.Description,
		DurationMin:   c.Duration,
		Intensity:     models.Intensity(c.Intensity),
		Dependencies:  deps,
		PreferredTime: models.TimeOfDay(c.Time),
		PreferredDays: days,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}

	if err := ctx.Store.AddActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Added activity: %s (ID: %s)\n", activity.Name, activity.ID)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No activities found")
		return nil
	}

	fmt.Println("Activities:")
	for _, a := range activities {
		extras := []string{fmt.Sprintf("%dm", a.DurationMin), string(a.Intensity)}
		if a.PreferredTime != "" && a.PreferredTime != models.TimeAny {
			extras = append(extras, string(a.PreferredTime))
		}
		if a.RequiresGoodWeather() {
			extras = append(extras, "good weather")
		}
		fmt.Printf("  %s - %s (%s)\n", a.Name, formatWeekdays(a.PreferredDays), strings.Join(extras, ", "))
		fmt.Printf("      ID: %s\n", a.ID)
	}

	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted activity: %s\n", activity.Name)
	return nil
}
