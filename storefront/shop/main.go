package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"moms-kitchen/storefront/backend"
	"moms-kitchen/storefront/cart"
	"moms-kitchen/storefront/config"
	"moms-kitchen/storefront/connection"
	"moms-kitchen/storefront/logging"
	"moms-kitchen/storefront/storage"
	"moms-kitchen/storefront/types"
)

// kitchenOps are the backend calls beyond the storefront contract.
type kitchenOps interface {
	connection.HealthChecker
	AdvanceOrder(ctx context.Context, orderID uint64, status types.OrderStatus) error
}

// app carries everything a command needs. Fields left nil are built by
// setup; tests fill them in beforehand.
type app struct {
	cfgPath string
	verbose bool

	cfg     *config.Config
	logger  *zap.Logger
	store   *cart.Store
	backend backend.Backend
	kitchen kitchenOps
	closers []func() error
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.teardown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shop",
		Short: "Mom's Kitchen storefront",
		Long: `Browse the menu, fill your cart and order home cooking.

Run without arguments to open the interactive storefront.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "storefront.yaml", "Config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newMenuCmd(a))
	root.AddCommand(newCartCmd(a))
	root.AddCommand(newCheckoutCmd(a))
	root.AddCommand(newOrderCmd(a))
	root.AddCommand(newAdminCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newTUICmd(a))
	return root
}

func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.verbose {
		a.cfg.Logging.Level = "debug"
	}

	if a.logger == nil {
		// The TUI owns the terminal, so its logs go to a file.
		if interactive(cmd) && a.cfg.Logging.File == "" {
			if err := os.MkdirAll(a.cfg.Cart.Path, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
			a.cfg.Logging.File = filepath.Join(a.cfg.Cart.Path, "storefront.log")
		}
		logger, err := logging.New(a.cfg.Logging)
		if err != nil {
			return err
		}
		a.logger = logger
	}

	if a.store == nil {
		slot, closeSlot, err := storage.Open(a.cfg.Cart.Storage, a.cfg.CartLocation())
		if err != nil {
			return fmt.Errorf("failed to open cart storage: %w", err)
		}
		a.closers = append(a.closers, closeSlot)
		a.store = cart.Open(slot, a.cfg.Cart.Key, a.logger)
	}

	if a.backend == nil {
		c, err := backend.Dial(a.cfg.Temporal, a.logger)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() error { c.Close(); return nil })
		client := backend.NewClient(c, a.cfg.Temporal.WorkflowID, a.cfg.Connection.RequestTimeout, a.logger)
		a.backend = client
		a.kitchen = client
	}
	return nil
}

func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
