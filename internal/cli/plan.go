package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/weekfit/internal/constants"
	"github.com/julianstephens/weekfit/internal/llm"
	"github.com/julianstephens/weekfit/internal/models"
	"github.com/julianstephens/weekfit/internal/planner"
)

type PlanCmd struct {
	Week         string `arg:"" help:"First day of the week to plan (YYYY-MM-DD or 'today')." default:"today"`
	Forecast     string `short:"f" help:"Path to a JSON file with seven daily forecasts." type:"path" required:""`
	Readiness    int    `help:"Recovery readiness score (0-100, -1 = not provided)." default:"-1"`
	Sleep        int    `help:"Sleep score (0-100, -1 = not provided)." default:"-1"`
	Source       string `help:"Readiness source (manual|fitbit|oura)." default:"manual"`
	Instructions string `short:"n" help:"Free-form instructions for the planner."`
	LastActivity string `help:"Most recently completed activity, for variety."`
	Multiple     bool   `short:"m" help:"Allow up to three activities per day."`
	NoAI         bool   `help:"Skip the AI planner and use rules directly."`
	Yes          bool   `short:"y" help:"Accept the plan without prompting."`
}

func (c *PlanCmd) Validate() error {
	if c.Readiness != -1 && (c.Readiness < 0 || c.Readiness > 100) {
		return fmt.Errorf("readiness must be between 0 and 100")
	}
	if c.Sleep != -1 && (c.Sleep < 0 || c.Sleep > 100) {
		return fmt.Errorf("sleep score must be between 0 and 100")
	}
	return nil
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	weekStart, err := parseDate(c.Week)
	if err != nil {
		return err
	}
	weekStartStr := weekStart.Format(constants.DateFormat)

	if existing, err := ctx.Store.GetPlan(weekStartStr); err == nil && len(existing.Days) > 0 && !c.Yes {
		fmt.Printf("Warning: A plan already exists for the week of %s. Generating a new plan will replace it.\n", weekStartStr)
		if !confirm("Continue? [y/N]: ") {
			fmt.Println("Plan generation cancelled.")
			return nil
		}
		fmt.Println()
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	appointments, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return fmt.Errorf("failed to get appointments: %w", err)
	}

	forecast, err := loadForecast(c.Forecast)
	if err != nil {
		return err
	}

	var readiness *models.ReadinessSnapshot
	if c.Readiness >= 0 || c.Sleep >= 0 {
		readiness = &models.ReadinessSnapshot{Source: models.ReadinessSource(c.Source)}
		if c.Readiness >= 0 {
			score := c.Readiness
			readiness.ReadinessScore = &score
		}
		if c.Sleep >= 0 {
			score := c.Sleep
			readiness.SleepScore = &score
		}
	}

	req, err := planner.BuildRequest(planner.Input{
		Activities:          activities,
		Appointments:        appointments,
		Forecast:            forecast,
		Readiness:           readiness,
		Instructions:        c.Instructions,
		LastActivity:        c.LastActivity,
		AllowMultiplePerDay: c.Multiple || settings.AllowMultiplePerDay,
		Unit:                settings.Unit,
		WeekStart:           weekStart,
	})
	if err != nil {
		return err
	}

	engine, closeFn, err := c.buildEngine(ctx, settings.AIModel)
	if err != nil {
		return err
	}
	defer closeFn()

	plan, err := engine.Generate(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Printf("Proposed plan for the week of %s (by %s):\n\n", weekStartStr, plan.GeneratedBy)
	printPlan(plan)

	if !c.Yes {
		if !confirm("\nAccept this plan? [y/N]: ") {
			fmt.Println("Plan discarded. You can adjust activities and regenerate.")
			return nil
		}
	}

	if err := ctx.Store.SavePlan(*plan); err != nil {
		return err
	}
	fmt.Println("Plan accepted and saved!")
	return nil
}

func (c *PlanCmd) buildEngine(ctx *Context, model string) (*planner.Engine, func(), error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if c.NoAI || apiKey == "" {
		if !c.NoAI {
			fmt.Println("GEMINI_API_KEY not set, planning with rules only.")
		}
		return planner.NewEngine(nil, ctx.Log), func() {}, nil
	}

	client, err := llm.NewGeminiClient(context.Background(), llm.GeminiConfig{
		APIKey: apiKey,
		Model:  model,
	})
	if err != nil {
		return nil, nil, err
	}
	ai := planner.NewAIPlanner(client, ctx.Log)
	return planner.NewEngine(ai, ctx.Log), func() { _ = client.Close() }, nil
}

func loadForecast(path string) ([]models.DayForecast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast file: %w", err)
	}
	var forecast []models.DayForecast
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast file: %w", err)
	}
	return forecast, nil
}

func printPlan(plan *models.WeeklyPlan) {
	for _, day := range plan.Days {
		date, _ := time.Parse(constants.DateFormat, day.Date)
		header := fmt.Sprintf("%s %s", date.Weekday().String()[:3], day.Date)

		if day.Verdict == models.VerdictRest {
			fmt.Printf("%s  Rest", header)
			if day.Rationale != "" {
				fmt.Printf(" (%s)", day.Rationale)
			}
			fmt.Println()
			continue
		}

		names := make([]string, len(day.Activities))
		for i, a := range day.Activities {
			names[i] = fmt.Sprintf("%s (%s)", a.ActivityName, a.TimeOfDay)
		}
		fmt.Printf("%s  %s\n", header, strings.Join(names, ", "))
		if day.WeatherSummary != "" {
			fmt.Printf("      %s\n", day.WeatherSummary)
		}
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
