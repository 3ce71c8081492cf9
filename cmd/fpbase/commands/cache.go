package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tlambert03/fpbase-go/internal/constants"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
		Long:  "Inspect and manage the memoized response cache",
	}

	cmd.AddCommand(newCacheStatsCommand())
	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Long:  "Show hit and miss counters for the response cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			stats := client.CacheStats()

			return renderOutput(stats, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Hits", fmt.Sprintf("%d", stats.Hits))
				_ = table.Append("Misses", fmt.Sprintf("%d", stats.Misses))
				_ = table.Append("Sets", fmt.Sprintf("%d", stats.Sets))
				_ = table.Append("Deletes", fmt.Sprintf("%d", stats.Deletes))
				_ = table.Append("Hit Rate", fmt.Sprintf("%.1f%%", stats.GetHitRate()*constants.PercentageMultiplier))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the response cache",
		Long: `Clear all memoized responses. Only meaningful for shared cache
backends; an in-process cache starts empty with every invocation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.ClearCache(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			_, _ = os.Stdout.WriteString("Cache cleared\n")

			return nil
		},
	}
}
