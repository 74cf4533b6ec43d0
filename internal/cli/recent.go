package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Number of transactions to show")
	rootCmd.AddCommand(recentCmd)
}

var recentLimit int

var recentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"ls"},
	Short:   "List recent transactions",
	RunE:    runRecent,
}

func runRecent(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	txs, err := d.Finance.Recent(activeUser(d), recentLimit)
	if err != nil {
		return err
	}

	if len(txs) == 0 {
		fmt.Println("No transactions yet. Run 'ahorify add <amount> <category>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.CreatedAt.Format("2006-01-02 15:04"),
			tx.Type,
			tx.Amount.StringFixed(2),
			tx.Category,
			tx.Description,
		)
	}
	return w.Flush()
}
