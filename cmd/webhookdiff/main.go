// Command webhookdiff classifies the differences between a baseline
// webhook payload schema and a new schema or payload sample as breaking
// or non-breaking, and reports them with JSON-Pointer locations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cfg := newConfig()

	rootCmd := &cobra.Command{
		Use:   "webhookdiff --base <file> [--next <file> | --next-payload <file> | --next-patch <file>]",
		Short: "Classify webhook schema changes as breaking or non-breaking",
		Long: `webhookdiff compares a baseline JSON Schema describing a webhook payload
against a new schema, a new payload sample, or a JSON Patch (RFC 6902) that
transforms the baseline, and reports whether a consumer validating against
the baseline could reject or misinterpret the new payload.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg, os.Stdout, os.Stderr)
		},
	}

	cfg.registerFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errBreakingChangesFound) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(exitCodeFor(err))
	}
}
