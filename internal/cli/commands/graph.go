package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stratum-model/stratum/internal/validate"
)

// NewGraphCommand creates the graph command group
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Analyze the reference graph",
	}

	cmd.AddCommand(newGraphCyclesCommand())
	cmd.AddCommand(newGraphImpactCommand())
	cmd.AddCommand(newGraphTraceCommand())

	return cmd
}

func newGraphCyclesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "List circular reference chains",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			cycles := env.index.Graph().Cycles()
			if len(cycles) == 0 {
				color.Green("no reference cycles")
				return nil
			}
			for _, cycle := range cycles {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cycle, " -> "))
			}
			color.Yellow("%d cycle(s) found", len(cycles))
			return nil
		},
	}
}

func newGraphImpactCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "impact <element-id>",
		Short: "List everything that depends on an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := env.store.Get(id); !ok {
				return fmt.Errorf("element %s does not exist", id)
			}

			dependents := env.index.Graph().Impact(id, depth)
			if len(dependents) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing depends on %s\n", id)
				return nil
			}
			for _, dep := range dependents {
				fmt.Fprintln(cmd.OutOrStdout(), dep)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d dependent element(s)\n", len(dependents))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "maximum hop count (0 = unbounded)")

	return cmd
}

func newGraphTraceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trace <element-id>",
		Short: "Show an element's reference path to the motivation layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := env.store.Get(id); !ok {
				return fmt.Errorf("element %s does not exist", id)
			}

			path, ok := validate.Trace(env.index, id)
			if !ok {
				color.Red("%s is not traceable", id)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(path, " -> "))
			return nil
		},
	}
}
