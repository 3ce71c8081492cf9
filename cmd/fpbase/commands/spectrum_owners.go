package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tlambert03/fpbase-go/pkg/fpbase"
)

// ownerFamily describes one spectrum-owning hardware family so the
// filters, cameras, and lights command groups share a single shape.
type ownerFamily[T any] struct {
	Use      string
	Aliases  []string
	Singular string
	Plural   string
	Client   func(client fpbase.Client) fpbase.SpectrumOwnersClient[T]
	Rows     func(table *tablewriter.Table, item *T)
}

func newOwnerCommand[T any](family ownerFamily[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     family.Use,
		Aliases: family.Aliases,
		Short:   "Look up " + family.Plural,
		Long:    fmt.Sprintf("Look up %s by name, with their spectra", family.Plural),
	}

	cmd.AddCommand(newOwnerGetCommand(family))
	cmd.AddCommand(newOwnerListCommand(family))

	return cmd
}

func newOwnerGetCommand[T any](family ownerFamily[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get a " + family.Singular + " by name",
		Long:  fmt.Sprintf("Get a %s by name. Lookups are case-insensitive.", family.Singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			item, err := family.Client(client).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(item, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				family.Rows(table, item)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}

func newOwnerListCommand[T any](family ownerFamily[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + family.Singular + " names",
		Long:  "List the names of all known " + family.Plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			names, err := family.Client(client).List(cmd.Context())
			if err != nil {
				return err
			}

			return renderNameList(family.Plural, names)
		},
	}
}

func appendOwnerRows(table *tablewriter.Table, owner *fpbase.SpectrumOwner, manufacturer string) {
	_ = table.Append("Name", owner.Name)

	if owner.ID != "" {
		_ = table.Append("ID", owner.ID.String())
	}

	if manufacturer != "" {
		_ = table.Append("Manufacturer", manufacturer)
	}

	_ = table.Append("Spectrum Type", string(owner.Spectrum.Subtype))
	_ = table.Append("Spectrum Points", fmt.Sprintf("%d", len(owner.Spectrum.Data)))
}

// NewFiltersCommand creates the filters command group.
func NewFiltersCommand() *cobra.Command {
	return newOwnerCommand(ownerFamily[fpbase.Filter]{
		Use:      "filters",
		Aliases:  []string{"filter"},
		Singular: "filter",
		Plural:   "filters",
		Client: func(client fpbase.Client) fpbase.FiltersClient {
			return client.Filters()
		},
		Rows: func(table *tablewriter.Table, filter *fpbase.Filter) {
			appendOwnerRows(table, &filter.SpectrumOwner, filter.Manufacturer)
			_ = table.Append("Bandcenter", formatNm(filter.Bandcenter))
			_ = table.Append("Bandwidth", formatNm(filter.Bandwidth))
			_ = table.Append("Edge", formatNm(filter.Edge))
		},
	})
}

// NewCamerasCommand creates the cameras command group.
func NewCamerasCommand() *cobra.Command {
	return newOwnerCommand(ownerFamily[fpbase.Camera]{
		Use:      "cameras",
		Aliases:  []string{"camera"},
		Singular: "camera",
		Plural:   "cameras",
		Client: func(client fpbase.Client) fpbase.CamerasClient {
			return client.Cameras()
		},
		Rows: func(table *tablewriter.Table, camera *fpbase.Camera) {
			appendOwnerRows(table, &camera.SpectrumOwner, camera.Manufacturer)
		},
	})
}

// NewLightsCommand creates the lights command group.
func NewLightsCommand() *cobra.Command {
	return newOwnerCommand(ownerFamily[fpbase.LightSource]{
		Use:      "lights",
		Aliases:  []string{"light", "light-sources"},
		Singular: "light source",
		Plural:   "light sources",
		Client: func(client fpbase.Client) fpbase.LightsClient {
			return client.Lights()
		},
		Rows: func(table *tablewriter.Table, light *fpbase.LightSource) {
			appendOwnerRows(table, &light.SpectrumOwner, light.Manufacturer)
		},
	})
}
