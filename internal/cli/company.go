package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/wire"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage the company registry",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CompanyAdapter().List(NewContext())
	},
}

var companyShowCmd = &cobra.Command{
	Use:   "show [acronym]",
	Short: "Show a registered company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CompanyAdapter().Show(NewContext(), args[0])
	},
}

var companyAddCmd = &cobra.Command{
	Use:   "add [acronym] [name...]",
	Short: "Register a company",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CompanyAdapter().Add(NewContext(), args[0], strings.Join(args[1:], " "))
	},
}

var companyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the registry to a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		return wire.CompanyAdapter().Export(NewContext(), output)
	},
}

var companyImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Register every company listed in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CompanyAdapter().Import(NewContext(), args[0])
	},
}

// CompanyCmd returns the company command with all subcommands attached.
func CompanyCmd() *cobra.Command {
	companyExportCmd.Flags().StringP("output", "o", "companies.yaml", "YAML file path")

	companyCmd.AddCommand(companyListCmd)
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companyAddCmd)
	companyCmd.AddCommand(companyExportCmd)
	companyCmd.AddCommand(companyImportCmd)

	return companyCmd
}
