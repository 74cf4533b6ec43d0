package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show your streak, level, and points",
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engagement.UserProgress(activeUser(d))

	fmt.Printf("%s Nivel %d: %s\n", p.LevelInfo.Badge, p.Level, p.LevelInfo.Name)
	fmt.Printf("Puntos: %d", p.Points)
	if p.NextLevelPoints > p.Points {
		fmt.Printf(" (%d para el siguiente nivel)", p.NextLevelPoints-p.Points)
	}
	fmt.Printf(" [%.1f%%]\n", p.ProgressPct)

	fmt.Printf("Racha actual: %d día(s)\n", p.Streak.Current)
	fmt.Printf("Mejor racha:  %d día(s)\n", p.Streak.Longest)
	fmt.Printf("Días activos: %d (últimos 30: %d, ritmo %.1f%%)\n",
		p.Engagement.TotalActiveDays, p.Engagement.RecentActiveDays, p.Engagement.EngagementRate)

	if p.Protections.FreezeAvailable {
		fmt.Println("🧊 Congelación de racha disponible")
	}
	if p.Protections.RecoveryAvailable {
		fmt.Println("🔄 Recuperación de racha disponible")
	}
	return nil
}
