// Package commands implements the fpbase CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tlambert03/fpbase-go/internal/constants"
	"github.com/tlambert03/fpbase-go/pkg/fpbase"
	"github.com/tlambert03/fpbase-go/pkg/fpclient"
)

// CreateClient builds an FPbase client from the resolved configuration.
func CreateClient() (fpbase.Client, error) {
	config := &fpbase.Config{
		BaseURL: viper.GetString("endpoint"),
		Debug:   viper.GetBool("verbose"),
		Logger:  newCommandLogger(),
	}

	switch backend := fpbase.CacheType(viper.GetString("cache")); backend {
	case fpbase.CacheTypeNone:
		config.Cache = &fpbase.CacheConfig{Type: fpbase.CacheTypeNone}
	case fpbase.CacheTypeNATS:
		natsURL := viper.GetString("nats-url")
		if natsURL == "" {
			return nil, constants.ErrNATSURLRequired
		}

		config.Cache = &fpbase.CacheConfig{
			Type: fpbase.CacheTypeNATS,
			NATS: &fpbase.NATSKVConfig{
				URL:    natsURL,
				Bucket: constants.NATSCacheBucket,
			},
		}
	case fpbase.CacheTypeMemory, "":
		// Memory cache, the library default.
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownCacheBackend, backend)
	}

	client, err := fpclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create FPbase client: %w", err)
	}

	return client, nil
}

// logrusLogger adapts a logrus logger to the fpbase.Logger interface.
type logrusLogger struct {
	logger *logrus.Logger
}

func newCommandLogger() fpbase.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if viper.GetBool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	return &logrusLogger{logger: logger}
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}

// outputFormat resolves the requested output format. When none is
// configured the format follows the destination: tables for terminals,
// JSON for pipes.
func outputFormat() string {
	format := viper.GetString("output")
	if format != "" {
		return format
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return constants.FormatTable
	}

	return constants.FormatJSON
}

func renderJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

func renderYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

// renderOutput dispatches to JSON, YAML, or the provided table renderer.
func renderOutput(value interface{}, renderTable func() error) error {
	switch format := outputFormat(); format {
	case constants.FormatJSON:
		return renderJSON(value)
	case constants.FormatYAML:
		return renderYAML(value)
	case constants.FormatTable:
		return renderTable()
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// renderNameList prints a plain name listing for one entity family.
func renderNameList(family string, names []string) error {
	return renderOutput(names, func() error {
		if len(names) == 0 {
			_, _ = fmt.Fprintf(os.Stdout, "No %s found\n", family)

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header(titleCase(family))

		for _, name := range names {
			_ = table.Append(name)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	})
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// formatNm renders an optional wavelength value.
func formatNm(value *float64) string {
	if value == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf(constants.NanometerFormat, *value)
}

// formatFloat renders an optional numeric value.
func formatFloat(value *float64) string {
	if value == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%g", *value)
}

// formatPercent renders an optional ratio as a percentage.
func formatPercent(value *float64) string {
	if value == nil {
		return constants.NotAvailable
	}

	return fmt.Sprintf("%.1f%%", *value*constants.PercentageMultiplier)
}
