package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahorify/ahorify/internal/domain"
)

func init() {
	engageCmd.Flags().BoolVar(&engageFirstTime, "first-time", false, "Mark the action as a first-time use")
	engageCmd.Flags().BoolVar(&engageConsistent, "consistent-week", false, "Mark a full week of consistency")
	rootCmd.AddCommand(engageCmd)
}

var (
	engageFirstTime  bool
	engageConsistent bool
)

var engageCmd = &cobra.Command{
	Use:   "engage <action>",
	Short: "Register an engagement action",
	Long: `Register an activity for today and see what it earns.
Recognized actions: transaction_added, dashboard_viewed, goal_checked,
weekly_review_completed, category_analysis_viewed, app_loaded, and any
custom_* tag.`,
	Args: cobra.ExactArgs(1),
	RunE: runEngage,
}

func runEngage(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	var meta *domain.ActionMetadata
	if engageFirstTime || engageConsistent {
		meta = &domain.ActionMetadata{
			FirstTime:      engageFirstTime,
			ConsistentWeek: engageConsistent,
		}
	}

	result, err := d.Engagement.RecordEngagement(activeUser(d), domain.ActionType(args[0]), meta)
	if err != nil {
		return err
	}

	if result.Streak.Message != "" {
		fmt.Println(result.Streak.Message)
	}
	fmt.Printf("Racha: %d día(s)\n", result.Streak.Streak)
	fmt.Printf("+%d puntos (base %d, bonus %d, racha %d, hito %d) — total %d\n",
		result.Points.Earned, result.Points.Base, result.Points.Bonus,
		result.Points.Streak, result.Points.Milestone, result.Points.Total)
	if result.Milestone.Achieved {
		fmt.Println(result.Milestone.Message)
	}
	if result.Level.LeveledUp {
		fmt.Printf("🎉 ¡Nivel %d! %s %s\n", result.Level.Level, result.Level.Info.Badge, result.Level.Info.Name)
	}
	return nil
}
