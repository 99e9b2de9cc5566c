package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/report"
	"github.com/stratum-model/stratum/internal/validate"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var (
		strict bool
		format string
		layer  string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the model's cross-layer references",
		Long: `Validate runs the full pipeline over the model: traceability rules,
predicate semantics, cardinality, bidirectional consistency, and reference
integrity. The whole model is always indexed so references resolve across
layers; --layer narrows which elements are validated. The exit code reflects
whether any errors were found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if !strict {
				strict = env.cfg.Strict
			}
			if format == "" {
				format = env.cfg.Report.Format
			}

			opts := []validate.Option{
				validate.WithStrict(strict),
				validate.WithLogger(env.logger),
			}
			if layer != "" {
				normalized, err := model.NormalizeLayer(layer)
				if err != nil {
					return err
				}
				opts = append(opts, validate.WithLayers(normalized))
			}

			pipeline := validate.NewPipeline(env.catalog, env.index, env.store, opts...)
			result := pipeline.Run()

			if err := report.Write(cmd.OutOrStdout(), result, report.Format(format)); err != nil {
				return err
			}
			if !result.IsValid() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat missing inverse references as errors and run semantic checks")
	cmd.Flags().StringVar(&format, "format", "", fmt.Sprintf("report format (%s|%s|%s)", report.FormatText, report.FormatJSON, report.FormatHTML))
	cmd.Flags().StringVar(&layer, "layer", "", "validate only one layer (name, code, or NN-name)")

	return cmd
}
