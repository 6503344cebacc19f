package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ipflix/ipflix/internal/domain/fingerprint"
	"github.com/ipflix/ipflix/internal/domain/privacy"
	"github.com/ipflix/ipflix/internal/entity"
	"github.com/spf13/cobra"
)

func newPrivacyCmd(opts *rootOptions) *cobra.Command {
	var candidatesFile string

	cmd := &cobra.Command{
		Use:   "privacy <audit.json|audit.yaml|->",
		Short: "Score an exported browser privacy audit",
		Long: `Reads a privacy audit collected by the web client and prints it with the
privacy score, level, risks and recommendations filled in.

With --candidates, ICE candidate lines captured from a WebRTC session are scanned
for leaked IPv4 addresses, which replace network.webrtcIPs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var audit entity.PrivacyAuditResult
			if err := readInput(args[0], cmd.InOrStdin(), &audit); err != nil {
				return err
			}

			if candidatesFile != "" {
				ips, err := candidateIPs(cmd.Context(), candidatesFile)
				if err != nil {
					return err
				}
				audit.Network.WebRTCIPs = ips
			}

			return writeReport(opts.out, opts.output, privacy.Finalize(&audit))
		},
	}

	cmd.Flags().StringVar(&candidatesFile, "candidates", "", "file of ICE candidate lines, one per line")

	return cmd
}

func newFingerprintCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <probes.json|probes.yaml|->",
		Short: "Detect lies and automation in exported fingerprint probes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap fingerprint.Snapshot
			if err := readInput(args[0], cmd.InOrStdin(), &snap); err != nil {
				return err
			}

			return writeReport(opts.out, opts.output, fingerprint.Analyze(cmd.Context(), snap, nil))
		},
	}
}

// candidateIPs streams the candidate file through the WebRTC collector
func candidateIPs(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates: %w", err)
	}
	defer f.Close()

	lines := make(chan string)
	go feedLines(ctx, f, lines)

	return fingerprint.CollectCandidateIPs(ctx, lines, fingerprint.CandidateWindow), nil
}

func feedLines(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			// an empty line ends gathering; skip blank separators in files
			continue
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			return
		case <-time.After(fingerprint.CandidateWindow):
			return
		}
	}
}
