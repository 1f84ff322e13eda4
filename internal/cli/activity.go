package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/ports/primary"
	"github.com/example/invoicer/internal/wire"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the history audit trail",
	Long:  "Show who saved, edited, deleted or imported what, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entityType, _ := cmd.Flags().GetString("type")
		action, _ := cmd.Flags().GetString("action")

		return wire.ActivityAdapter().List(NewContext(), primary.ActivityFilters{
			EntityType: entityType,
			Action:     action,
			Limit:      limit,
		})
	},
}

var activityShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one audit entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ActivityAdapter().Show(NewContext(), args[0])
	},
}

var activityPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return wire.ActivityAdapter().Prune(NewContext(), days)
	},
}

// ActivityCmd returns the activity command with all subcommands attached.
func ActivityCmd() *cobra.Command {
	activityCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	activityCmd.Flags().String("type", "", "Filter by entity type (invoice, history, company)")
	activityCmd.Flags().String("action", "", "Filter by action (create, update, delete)")

	activityPruneCmd.Flags().Int("days", 90, "Delete entries older than N days")

	activityCmd.AddCommand(activityShowCmd)
	activityCmd.AddCommand(activityPruneCmd)

	return activityCmd
}
