package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/version"
)

// NewRootCmd assembles the invoicer command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "invoicer",
		Short:   "Invoice identifier generator and history keeper",
		Version: version.String(),
		Long: `invoicer drafts sequential invoice identifiers of the form
INVOICE_FAB_SAMPERI_<ACR><NNN>_<DD-MM-YY>_(<period>) and keeps the history
they are derived from.`,
		SilenceUsage:       true,
		PersistentPreRunE:  Bootstrap,
		PersistentPostRunE: Shutdown,
	}
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(InvoiceCmds()...)
	rootCmd.AddCommand(PeriodCmd())
	rootCmd.AddCommand(CompanyCmd())
	rootCmd.AddCommand(ActivityCmd())

	return rootCmd
}
