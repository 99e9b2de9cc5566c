package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/cli/config"
	"github.com/stratum-model/stratum/internal/refs"
	"github.com/stratum-model/stratum/internal/store"
)

// env bundles the loaded collaborators a command works against.
type env struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	index   *refs.Index
	store   *store.Store
	logger  *zap.Logger
}

// loadEnv loads config, catalog, and model for a command invocation. A
// catalog failure is fatal here: nothing can run without it.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	var cat *catalog.Catalog
	if cfg.Catalog != "" {
		cat, err = catalog.LoadFile(cfg.Catalog, logger)
	} else {
		cat, err = catalog.LoadDefault(logger)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog load failed: %w", err)
	}

	index := refs.NewIndex(refs.NewExtractor(cat))
	st, err := store.Open(cfg.ModelDir, index, logger)
	if err != nil {
		if !config.InProject() {
			return nil, fmt.Errorf("%w (no stratum.yml found in this directory or any parent)", err)
		}
		return nil, err
	}

	return &env{
		cfg:     cfg,
		catalog: cat,
		index:   index,
		store:   st,
		logger:  logger,
	}, nil
}
