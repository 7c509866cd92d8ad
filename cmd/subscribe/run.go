package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lhomangroup/voyageur-malin/internal/client"
	"github.com/lhomangroup/voyageur-malin/internal/config"
	"github.com/lhomangroup/voyageur-malin/internal/logger"
)

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	lg := logger.New(cfg.LogLevel, cfg.LogFormat)

	endpoint, anonKey, mode := cfg.Client.Endpoint, cfg.Client.AnonKey, cfg.Client.Mode
	if flags.endpoint != "" {
		endpoint = flags.endpoint
	}
	if flags.anonKey != "" {
		anonKey = flags.anonKey
	}
	if flags.mode != "" {
		mode = flags.mode
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(endpoint, anonKey, cfg.Client.Timeout)
	if !c.Configured() {
		lg.Warn("backend not configured, using local fallback")
	}

	flow, err := client.NewFlow(client.FlowConfig{
		Mode:          client.Mode(mode),
		BookingURL:    cfg.Client.BookingURL,
		RedirectDelay: cfg.Client.RedirectDelay,
		FallbackDelay: cfg.Client.FallbackDelay,
	}, c, terminalNavigator{out: cmd.OutOrStdout()}, lg.Logger)
	if err != nil {
		return fmt.Errorf("mode %q: %w", mode, err)
	}

	flow.SetForm(client.Form{
		FirstName:   flags.firstName,
		LastName:    flags.lastName,
		Email:       flags.email,
		GDPRConsent: flags.consent,
	})

	out := flow.Submit(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), out.Message)
	if !out.Success {
		return fmt.Errorf("submission not accepted")
	}
	if out.RedirectURL != "" {
		return flow.Redirect(ctx, out)
	}
	return nil
}

// terminalNavigator waits for the redirect delay and prints the target.
type terminalNavigator struct {
	out io.Writer
}

func (n terminalNavigator) Open(ctx context.Context, url string, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	_, err := fmt.Fprintf(n.out, "Réservez maintenant : %s\n", url)
	return err
}
