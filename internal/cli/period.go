package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/wire"
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Work with billing period labels",
}

var periodNormalizeCmd = &cobra.Command{
	Use:   "normalize [text...]",
	Short: "Print the canonical label for free-form period text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wire.InvoiceAdapter().Normalize(strings.Join(args, " "))
		return nil
	},
}

var periodNextCmd = &cobra.Command{
	Use:   "next [label]",
	Short: "Print the label that follows a period label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explain, _ := cmd.Flags().GetBool("explain")
		wire.InvoiceAdapter().NextPeriod(args[0], explain)
		return nil
	},
}

// PeriodCmd returns the period command with all subcommands attached.
func PeriodCmd() *cobra.Command {
	periodNextCmd.Flags().BoolP("explain", "e", false, "Also print the rule that produced the label")

	periodCmd.AddCommand(periodNormalizeCmd)
	periodCmd.AddCommand(periodNextCmd)

	return periodCmd
}
