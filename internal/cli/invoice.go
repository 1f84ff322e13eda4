package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/wire"
)

var nextCmd = &cobra.Command{
	Use:   "next [acronym]",
	Short: "Draft the next invoice for a registered company",
	Long: `Draft the next invoice identifier for a registered company. The
sequence number follows the highest number in the history and the billing
period advances from the company's latest invoice.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		return wire.InvoiceAdapter().Next(NewContext(), args[0], save)
	},
}

var adhocCmd = &cobra.Command{
	Use:   "adhoc [acronym] [period...]",
	Short: "Draft an invoice for a company outside the registry",
	Long: `Draft an invoice for a one-off company. The billing period is free
text ("first quarter 2025", "Q1 25") and is normalized before use.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		period := strings.Join(args[1:], " ")
		return wire.InvoiceAdapter().AdHoc(NewContext(), args[0], period, save)
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [identifier]",
	Short: "Record an invoice identifier in the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InvoiceAdapter().Save(NewContext(), args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the invoice history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		company, _ := cmd.Flags().GetString("company")
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.InvoiceAdapter().List(NewContext(), company, limit)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [identifier]",
	Short: "Show the fields of an invoice identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InvoiceAdapter().Show(NewContext(), args[0])
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [current] [new]",
	Short: "Replace an entry in the history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.InvoiceAdapter().Edit(NewContext(), args[0], args[1])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [identifier]",
	Short: "Remove an entry from the history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return wire.InvoiceAdapter().Delete(NewContext(), args[0], force)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the history to a backup file",
	Long: `Write the history to a backup file, one identifier per line. Without
--output the file is named invoices_backup_YYYY-MM-DD.txt and placed in the
configured backup directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return wire.InvoiceAdapter().Export(NewContext(), output)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the history with a backup file",
	Long: `Replace the whole history with the identifier lines of a backup file.
Lines that do not start with the identifier prefix are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return wire.InvoiceAdapter().Import(NewContext(), args[0], force)
	},
}

// InvoiceCmds returns the top-level invoice commands.
func InvoiceCmds() []*cobra.Command {
	nextCmd.Flags().BoolP("save", "s", false, "Record the drafted invoice in the history")
	adhocCmd.Flags().BoolP("save", "s", false, "Record the drafted invoice in the history")

	listCmd.Flags().StringP("company", "c", "", "Only show invoices for this acronym")
	listCmd.Flags().IntP("limit", "n", 0, "Maximum entries to show (0 = all)")

	deleteCmd.Flags().BoolP("force", "f", false, "Confirm the deletion")

	exportCmd.Flags().StringP("output", "o", "", "Backup file path")

	importCmd.Flags().BoolP("force", "f", false, "Confirm replacing the history")

	return []*cobra.Command{nextCmd, adhocCmd, saveCmd, listCmd, showCmd, editCmd, deleteCmd, exportCmd, importCmd}
}
