package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the raw query command.
func NewQueryCommand() *cobra.Command {
	var variablesJSON string

	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Run a raw GraphQL query",
		Long: `Run a raw GraphQL query against the FPbase API and print the decoded
data. Variables are passed as a JSON object, inline or from a file with
the @file syntax.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variables, err := parseQueryVariables(variablesJSON)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			data, err := client.Query(cmd.Context(), args[0], variables)
			if err != nil {
				return err
			}

			// Raw query results have no fixed shape, so tables fall back
			// to JSON.
			return renderOutput(data, func() error {
				return renderJSON(data)
			})
		},
	}

	cmd.Flags().StringVar(&variablesJSON, "variables", "", "query variables as a JSON object, or @path/to/file.json")

	return cmd
}

func parseQueryVariables(variablesJSON string) (map[string]interface{}, error) {
	if variablesJSON == "" {
		return nil, nil
	}

	raw := []byte(variablesJSON)

	if strings.HasPrefix(variablesJSON, "@") {
		contents, err := os.ReadFile(strings.TrimPrefix(variablesJSON, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read variables file: %w", err)
		}

		raw = contents
	}

	var variables map[string]interface{}
	if err := json.Unmarshal(raw, &variables); err != nil {
		return nil, fmt.Errorf("failed to parse variables as a JSON object: %w", err)
	}

	return variables, nil
}
