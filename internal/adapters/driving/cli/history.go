package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past onboarding attempts",
	Long:  `Show onboarding attempts recorded on this machine, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if onboardingService == nil {
		return errors.New("onboarding service not configured")
	}

	records, err := onboardingService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No onboarding attempts recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tMODE\tACCOUNT\tNAME\tSTATUS\tDETAIL")
	for i := range records {
		r := &records[i]
		detail := r.ScriptPath
		if r.Error != "" {
			detail = r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.Mode, r.AccountID, r.AccountName, r.Status, detail)
	}
	return w.Flush()
}
