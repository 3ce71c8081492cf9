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

// NewFluorophoresCommand creates the fluorophores command group.
func NewFluorophoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fluorophores",
		Aliases: []string{"fluorophore", "fluors"},
		Short:   "Look up dyes and fluorescent proteins",
		Long:    "Look up dyes and fluorescent proteins by name, with spectral properties",
	}

	cmd.AddCommand(newFluorophoresGetCommand())
	cmd.AddCommand(newFluorophoresListCommand())

	return cmd
}

func newFluorophoresGetCommand() *cobra.Command {
	var (
		proteinOnly bool
		dyeOnly     bool
	)

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get a fluorophore by name",
		Long:  "Get a dye or fluorescent protein by name. Lookups are case-insensitive and accept slugs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			name := args[0]

			switch {
			case proteinOnly:
				protein, err := client.Fluorophores().GetProtein(ctx, name)
				if err != nil {
					return err
				}

				return renderOutput(protein, func() error {
					return renderProteinTable(protein)
				})
			case dyeOnly:
				dye, err := client.Fluorophores().GetDye(ctx, name)
				if err != nil {
					return err
				}

				return renderOutput(dye, func() error {
					return renderFluorophoreTable(dye)
				})
			default:
				fluor, err := client.Fluorophores().Get(ctx, name)
				if err != nil {
					return err
				}

				return renderOutput(fluor, func() error {
					return renderFluorophoreTable(fluor)
				})
			}
		},
	}

	cmd.Flags().BoolVar(&proteinOnly, "protein", false, "fail unless the name is a fluorescent protein")
	cmd.Flags().BoolVar(&dyeOnly, "dye", false, "fail unless the name is a dye")
	cmd.MarkFlagsMutuallyExclusive("protein", "dye")

	return cmd
}

func newFluorophoresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fluorophore names",
		Long:  "List the names of all known dyes and fluorescent proteins",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			names, err := client.Fluorophores().List(cmd.Context())
			if err != nil {
				return err
			}

			return renderNameList("fluorophores", names)
		},
	}
}

func renderFluorophoreTable(fluor *fpbase.Fluorophore) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("Name", fluor.Name)
	_ = table.Append("ID", fluor.ID.String())
	_ = table.Append("States", fmt.Sprintf("%d", len(fluor.States)))

	if state := fluor.DefaultState; state != nil {
		appendStateRows(table, state)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderProteinTable(protein *fpbase.Protein) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("Name", protein.Name)
	_ = table.Append("ID", protein.ID.String())

	if protein.Seq != "" {
		_ = table.Append("Sequence Length", fmt.Sprintf("%d aa", len(protein.Seq)))
	}

	if protein.MolecularWeight != nil {
		_ = table.Append("Molecular Weight", fmt.Sprintf("%.1f kDa", *protein.MolecularWeight))
	}

	if protein.Agg != "" {
		_ = table.Append("Oligomerization", string(protein.Agg))
	}

	if protein.SwitchType != "" {
		_ = table.Append("Switch Type", string(protein.SwitchType))
	}

	if len(protein.PDB) > 0 {
		_ = table.Append("PDB", strings.Join(protein.PDB, ", "))
	}

	if protein.Genbank != "" {
		_ = table.Append("GenBank", protein.Genbank)
	}

	if protein.Uniprot != "" {
		_ = table.Append("UniProt", protein.Uniprot)
	}

	if protein.PrimaryReference != nil {
		_ = table.Append("Primary Reference", protein.PrimaryReference.URL())
	}

	_ = table.Append("States", fmt.Sprintf("%d", len(protein.States)))

	if state := protein.DefaultState; state != nil {
		appendStateRows(table, state)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func appendStateRows(table *tablewriter.Table, state *fpbase.State) {
	_ = table.Append("Default State", state.Name)
	_ = table.Append("Ex Max", formatNm(state.ExMax))
	_ = table.Append("Em Max", formatNm(state.EmMax))
	_ = table.Append("Ext Coeff", formatFloat(state.ExtCoeff))
	_ = table.Append("Quantum Yield", formatPercent(state.QY))

	subtypes := make([]string, 0, len(state.Spectra))
	for _, spectrum := range state.Spectra {
		subtypes = append(subtypes, string(spectrum.Subtype))
	}

	if len(subtypes) > 0 {
		_ = table.Append("Spectra", strings.Join(subtypes, ", "))
	} else {
		_ = table.Append("Spectra", constants.NotAvailable)
	}
}
