package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ahorify/ahorify/internal/domain"
)

func init() {
	addCmd.Flags().BoolVar(&addIncome, "income", false, "Record income instead of an expense")
	addCmd.Flags().StringVar(&addEmotion, "emotion", "neutral", "Emotional context (neutral, happy, impulsive, stress, investment)")
	rootCmd.AddCommand(addCmd)
}

var (
	addIncome  bool
	addEmotion string
)

var addCmd = &cobra.Command{
	Use:   "add <amount> <category> [description...]",
	Short: "Record an expense or income",
	Long: `Record a transaction. Amounts are always positive; use --income
for money coming in. Adding a transaction counts toward your streak.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	txType := domain.TxExpense
	if addIncome {
		txType = domain.TxIncome
	}
	category := args[1]
	description := strings.Join(args[2:], " ")

	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Finance.Add(activeUser(d), amount, txType, category, description, domain.TransactionEmotion(addEmotion))
	if err != nil {
		return err
	}

	tx := result.Transaction
	fmt.Printf("Saved %s %s %s (%s)\n", tx.Type, tx.Amount.StringFixed(2), d.Config.User.Currency, tx.Category)

	if eng := result.Engagement; eng != nil {
		if eng.Streak.Message != "" {
			fmt.Println(eng.Streak.Message)
		}
		fmt.Printf("+%d puntos (total %d)\n", eng.Points.Earned, eng.Points.Total)
		if eng.Milestone.Achieved {
			fmt.Println(eng.Milestone.Message)
		}
		if eng.Level.LeveledUp {
			fmt.Printf("🎉 ¡Nivel %d! %s %s\n", eng.Level.Level, eng.Level.Info.Badge, eng.Level.Info.Name)
		}
	}
	return nil
}
