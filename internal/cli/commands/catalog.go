package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stratum-model/stratum/internal/catalog"
)

// NewCatalogCommand creates the catalog command group
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the link/relationship catalog",
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogPredicatesCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var (
		category string
		layer    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List link types",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			types := env.catalog.Types()
			if category != "" {
				types = env.catalog.ByCategory(category)
			}
			if layer != "" {
				types, err = filterBySourceLayer(env.catalog, types, layer)
				if err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PREDICATE\tINVERSE\tCATEGORY\tSOURCE\tTARGET\tCARDINALITY")
			for _, lt := range types {
				sources := make([]string, len(lt.SourceLayers))
				for i, l := range lt.SourceLayers {
					sources[i] = string(l)
				}
				target := string(lt.TargetLayer)
				if len(lt.TargetTypes) > 0 {
					target += "." + strings.Join(lt.TargetTypes, "|")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					lt.Predicate, lt.Inverse, lt.Category,
					strings.Join(sources, ","), target, lt.Cardinality)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&layer, "layer", "", "filter by source layer (name, code, or NN-name)")

	return cmd
}

func filterBySourceLayer(cat *catalog.Catalog, types []*catalog.LinkType, layer string) ([]*catalog.LinkType, error) {
	forLayer, err := cat.BySourceLayer(layer)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]bool, len(forLayer))
	for _, lt := range forLayer {
		allowed[lt.ID] = true
	}
	var out []*catalog.LinkType
	for _, lt := range types {
		if allowed[lt.ID] {
			out = append(out, lt)
		}
	}
	return out, nil
}

func newCatalogPredicatesCommand() *cobra.Command {
	var layer string

	cmd := &cobra.Command{
		Use:   "predicates",
		Short: "List predicates valid for a layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			if layer == "" {
				for _, p := range env.catalog.KnownPredicates() {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			predicates, err := env.catalog.PredicatesForLayer(layer)
			if err != nil {
				return err
			}
			if len(predicates) == 0 {
				color.Yellow("no predicates apply to layer %s", layer)
				return nil
			}
			for _, p := range predicates {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "layer identifier (name, code, or NN-name)")

	return cmd
}
