package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tlambert03/fpbase-go/internal/constants"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// NewMicroscopesCommand creates the microscopes command group.
func NewMicroscopesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "microscopes",
		Aliases: []string{"microscope", "scopes"},
		Short:   "Look up microscope configurations",
		Long:    "Look up shared microscope configurations and their optical configs",
	}

	cmd.AddCommand(newMicroscopesGetCommand())
	cmd.AddCommand(newMicroscopesListCommand())

	return cmd
}

func newMicroscopesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a microscope by id",
		Long:  "Get a microscope configuration by its identifier, as found in an FPbase microscope URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			scope, err := client.Microscopes().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(scope, func() error {
				return renderMicroscopeTable(scope)
			})
		},
	}
}

func newMicroscopesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List microscopes",
		Long:  "List the identifiers and names of all shared microscopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			scopes, err := client.Microscopes().List(cmd.Context())
			if err != nil {
				return err
			}

			return renderOutput(scopes, func() error {
				if len(scopes) == 0 {
					_, _ = os.Stdout.WriteString("No microscopes found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name")

				for _, scope := range scopes {
					_ = table.Append(scope.ID.String(), scope.Name)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}

func renderMicroscopeTable(scope *fpbase.Microscope) error {
	_, _ = fmt.Fprintf(os.Stdout, "%s (%s)\n\n", scope.Name, scope.ID)

	if len(scope.OpticalConfigs) == 0 {
		_, _ = os.Stdout.WriteString("No optical configurations\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Optical Config", "Filters", "Camera", "Light", "Laser")

	for _, config := range scope.OpticalConfigs {
		filters := make([]string, 0, len(config.Filters))
		for _, placement := range config.Filters {
			filters = append(filters, fmt.Sprintf("%s: %s", placement.Path, placement.Filter.Name))
		}

		camera := constants.NotAvailable
		if config.Camera != nil {
			camera = config.Camera.Name
		}

		light := constants.NotAvailable
		if config.Light != nil {
			light = config.Light.Name
		}

		laser := constants.NotAvailable
		if config.Laser != nil {
			laser = fmt.Sprintf("%d nm", *config.Laser)
		}

		_ = table.Append(config.Name, strings.Join(filters, "; "), camera, light, laser)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
