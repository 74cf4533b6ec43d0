package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, trends, and your financial health score",
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	uid := activeUser(d)
	now := time.Now()
	currency := d.Config.User.Currency

	totals, err := d.Finance.Totals(uid)
	if err != nil {
		return err
	}
	fmt.Printf("Balance:  %s %s\n", totals.Balance.StringFixed(2), currency)
	fmt.Printf("Ingresos: %s %s\n", totals.Income.StringFixed(2), currency)
	fmt.Printf("Gastos:   %s %s\n", totals.Expenses.StringFixed(2), currency)

	weekly, err := d.Finance.WeeklySummaryAt(uid, now)
	if err != nil {
		return err
	}
	fmt.Printf("\nEsta semana: %s %s (%s %.1f%%)\n",
		weekly.ThisWeekExpenses.StringFixed(2), currency, weekly.Trend, weekly.ExpenseChangePct)

	breakdown, err := d.Finance.CategoryBreakdown(uid)
	if err != nil {
		return err
	}
	if len(breakdown) > 0 {
		fmt.Println("\nGastos por categoría:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, share := range breakdown {
			fmt.Fprintf(w, "  %s\t%s %s\t%.1f%%\n", share.Category, share.Amount.StringFixed(2), currency, share.Percentage)
		}
		w.Flush()
	}

	score, err := d.Analytics.HealthScoreAt(uid, now)
	if err != nil {
		return err
	}
	fmt.Printf("\nSalud financiera: %d/100 — %s\n", score.TotalScore, score.Grade)
	for _, rec := range score.Recommendations {
		fmt.Printf("  %s\n", rec)
	}
	return nil
}
