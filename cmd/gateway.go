package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/parlance-ai/parlance/internal/dependency"
)

var gatewayAddr string

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the parlance websocket gateway",
	RunE:  runGateway,
}

func init() {
	gatewayCmd.Flags().StringVarP(&gatewayAddr, "addr", "a", "", "Listen address (overrides config)")
}

func runGateway(_ *cobra.Command, _ []string) error {
	container, err := dependency.New("")
	if err != nil {
		return err
	}

	if gatewayAddr != "" {
		cfg, err := container.Config()
		if err != nil {
			return err
		}
		cfg.Gateway.Addr = gatewayAddr
	}

	srv, err := container.Gateway()
	if err != nil {
		return err
	}
	cronSvc, err := container.Cron()
	if err != nil {
		return err
	}

	cfg, err := container.Config()
	if err != nil {
		return err
	}
	fmt.Printf("%s Starting parlance gateway on %s...\n", logo, cfg.Gateway.Addr)

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error { return cronSvc.Start(gctx) })

	fmt.Printf("%s Gateway running. Press Ctrl+C to stop.\n", logo)

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "gateway error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
