package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/parlance-ai/parlance/internal/config"
	"github.com/parlance-ai/parlance/internal/cron"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Manage scheduled jobs",
}

func init() {
	cronCmd.AddCommand(cronListCmd)
	cronCmd.AddCommand(cronAddCmd)
	cronCmd.AddCommand(cronRemoveCmd)
}

func cronStorePath() string {
	return filepath.Join(config.DataDir(), "cron", "jobs.json")
}

// loadedCronService returns a Service with the persisted jobs visible,
// without arming any schedules.
func loadedCronService() *cron.Service {
	svc := cron.NewService(cronStorePath())
	if err := svc.Load(); err != nil {
		fmt.Fprintf(cronCmd.ErrOrStderr(), "warning: could not load jobs: %v\n", err)
	}
	return svc
}

var cronListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled jobs",
	RunE: func(_ *cobra.Command, _ []string) error {
		jobs := loadedCronService().ListJobs()
		if len(jobs) == 0 {
			fmt.Println("No scheduled jobs.")
			return nil
		}
		fmt.Printf("%-18s %-20s %-25s %-8s %-20s\n", "ID", "Name", "Schedule", "Status", "Last Run")
		for _, j := range jobs {
			lastRun := ""
			if j.LastRunAtMs > 0 {
				lastRun = time.UnixMilli(j.LastRunAtMs).Format("2006-01-02 15:04")
			}
			fmt.Printf("%-18s %-20s %-25s %-8s %-20s\n",
				j.ID, j.Name, formatSchedule(j.Schedule), j.LastStatus, lastRun)
		}
		return nil
	},
}

var (
	cronAddName  string
	cronAddMsg   string
	cronAddEvery int
	cronAddCron  string
	cronAddAt    string
)

var cronAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scheduled job",
	RunE: func(_ *cobra.Command, _ []string) error {
		sched, err := buildSchedule()
		if err != nil {
			return err
		}

		svc := loadedCronService()
		id, err := svc.AddJob(context.Background(), cronAddName, cronAddMsg, sched, sched.Kind == "at")
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added job '%s' (%s)\n", cronAddName, id)
		return nil
	},
}

func init() {
	cronAddCmd.Flags().StringVarP(&cronAddName, "name", "n", "", "Job name (required)")
	cronAddCmd.Flags().StringVarP(&cronAddMsg, "message", "m", "", "Message for the agent (required)")
	cronAddCmd.Flags().IntVarP(&cronAddEvery, "every", "e", 0, "Run every N seconds")
	cronAddCmd.Flags().StringVarP(&cronAddCron, "cron", "c", "", "Cron expression (e.g. '0 9 * * *')")
	cronAddCmd.Flags().StringVar(&cronAddAt, "at", "", "Run once at ISO datetime")

	_ = cronAddCmd.MarkFlagRequired("name")
	_ = cronAddCmd.MarkFlagRequired("message")
}

func buildSchedule() (cron.Schedule, error) {
	switch {
	case cronAddEvery > 0:
		return cron.Schedule{Kind: "every", EveryMs: int64(cronAddEvery) * 1000}, nil
	case cronAddCron != "":
		return cron.Schedule{Kind: "cron", Expr: cronAddCron}, nil
	case cronAddAt != "":
		dt, err := time.ParseInLocation("2006-01-02T15:04:05", cronAddAt, time.Local)
		if err != nil {
			dt, err = time.Parse(time.RFC3339, cronAddAt)
			if err != nil {
				return cron.Schedule{}, fmt.Errorf("invalid --at value %q: %w", cronAddAt, err)
			}
		}
		return cron.Schedule{Kind: "at", AtMs: dt.UnixMilli()}, nil
	}
	return cron.Schedule{}, fmt.Errorf("must specify --every, --cron, or --at")
}

var cronRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a scheduled job",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if loadedCronService().RemoveJob(args[0]) {
			fmt.Printf("✓ Removed job %s\n", args[0])
		} else {
			fmt.Printf("Job %s not found\n", args[0])
		}
		return nil
	},
}

func formatSchedule(s cron.Schedule) string {
	switch s.Kind {
	case "every":
		return fmt.Sprintf("every %ds", s.EveryMs/1000)
	case "cron":
		return s.Expr
	case "at":
		return "once at " + time.UnixMilli(s.AtMs).Format("2006-01-02 15:04")
	}
	return s.Kind
}
