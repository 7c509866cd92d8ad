package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "subscribe",
		Short: "Submit the Voyageur Malin lead form from the terminal",
		Long: "Validates the form locally, calls the send-checklist endpoint and, in redirect\n" +
			"mode, prints the booking page once the redirect delay has elapsed.",
		Args:          cobra.NoArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags struct {
		firstName string
		lastName  string
		email     string
		consent   bool
		mode      string
		endpoint  string
		anonKey   string
	}
)

func main() {
	f := rootCmd.Flags()
	f.StringVar(&flags.firstName, "first-name", "", "first name")
	f.StringVar(&flags.lastName, "last-name", "", "last name")
	f.StringVar(&flags.email, "email", "", "email address")
	f.BoolVar(&flags.consent, "consent", false, "accept the privacy policy")
	f.StringVar(&flags.mode, "mode", "", "inline or redirect (default from CLIENT_MODE)")
	f.StringVar(&flags.endpoint, "endpoint", "", "backend base URL (default from CLIENT_ENDPOINT)")
	f.StringVar(&flags.anonKey, "anon-key", "", "backend public key (default from CLIENT_ANON_KEY)")

	if err := rootCmd.Execute(); err != nil {
		slog.Default().Error("subscribe failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
