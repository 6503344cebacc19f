package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ipflix/ipflix/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	output     string
	verbose    bool

	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "ipflix",
		Short: "IP intelligence and browser privacy scoring",
		Long: `ipflix looks up geolocation, threat reputation and OSINT exposure of an IP,
and scores browser privacy audits and fingerprint probes exported by the web client.

Examples:
  ipflix lookup 8.8.8.8
  ipflix lookup 1.1.1.1 --output yaml
  ipflix privacy audit.json --candidates ice.txt
  ipflix fingerprint probes.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.output)
			}
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./config.yaml if present)")
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log provider activity to stderr")

	cmd.AddCommand(newLookupCmd(opts))
	cmd.AddCommand(newPrivacyCmd(opts))
	cmd.AddCommand(newFingerprintCmd(opts))

	return cmd
}

// logger writes to stderr so stdout stays a clean report. Without --verbose
// only warnings and errors are shown.
func (o *rootOptions) logger(cfg *config.Config) *slog.Logger {
	if o.verbose {
		return config.NewLogger(cfg, o.errOut)
	}
	return slog.New(slog.NewTextHandler(o.errOut, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
