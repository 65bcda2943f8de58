package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"nft-market/adapters"
	"nft-market/internal/types"
)

// fetchCmd creates the "fetch" subcommand.
func fetchCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "fetch <marketplace> <id>...",
		Short: "Fetch statistics for one or more collections",
		Example: `  nftmarket fetch opensea azuki
  nftmarket fetch nftgeek icpunks --format yaml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := types.ParseMarketplace(args[0])
			if err != nil {
				return err
			}

			a, err := setup()
			if err != nil {
				return err
			}
			defer a.closer()

			ctx, cancel := signalContext()
			defer cancel()

			results := a.retriever.FetchAll(ctx, market, args[1:])

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := writeOutput(out, format, results); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d collections failed", failed, len(args)-1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}

// marketsCmd creates the "markets" subcommand.
func marketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List supported marketplaces and explorers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := adapters.DefaultTable()

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Marketplace", "Kind", "Status"})
			for _, m := range strategies.Marketplaces() {
				s, err := strategies.Resolve(m)
				if err != nil {
					return err
				}

				kind := "marketplace"
				if s.Explorer {
					kind = "explorer"
				}
				status := "active"
				if s.Deprecated {
					status = fmt.Sprintf("deprecated (use %s)", s.Successor)
				}
				t.AppendRow(table.Row{m, kind, status})
			}

			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}
}

// probeCmd creates the "probe" subcommand.
func probeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "probe <marketplace> <id>",
		Short: "Show the raw text behind every locator of a marketplace",
		Long: `Load each page of a marketplace strategy once and print what every locator
of every layout variant finds. Use it to spot layout drift.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := types.ParseMarketplace(args[0])
			if err != nil {
				return err
			}

			a, err := setup()
			if err != nil {
				return err
			}
			defer a.closer()

			ctx, cancel := signalContext()
			defer cancel()

			lines, err := a.retriever.Probe(ctx, market, args[1])
			if len(lines) > 0 {
				if werr := writeOutput(os.Stdout, format, lines); werr != nil {
					return werr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json, yaml")
	return cmd
}
