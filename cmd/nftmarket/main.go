package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"nft-market/extractor"
	"nft-market/internal/config"
	"nft-market/internal/types"
	"nft-market/utils"
)

var (
	cfgFile string
	verbose bool
	driver  string
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "nftmarket",
		Short: "Fetch NFT collection statistics from marketplace pages",
		Long: `nftmarket loads a collection page on an NFT marketplace or explorer in a
headless browser and reads its name, supply, listings, owners, floor price
and volume.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every failed attempt")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "page driver: chromedp, rod, http")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(marketsCmd())
	rootCmd.AddCommand(probeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles what every subcommand needs
type app struct {
	config    *types.Config
	logger    *logrus.Logger
	retriever *extractor.Retriever
	closer    func()
}

// setup loads config, applies flags and builds the retriever
func setup() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	if driver != "" {
		cfg.Driver = driver
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	opener, err := utils.NewPageOpener(cfg, logger)
	if err != nil {
		return nil, err
	}

	closer := func() {}
	if c, ok := opener.(interface{ Close() }); ok {
		closer = c.Close
	}

	return &app{
		config:    cfg,
		logger:    logger,
		retriever: extractor.NewRetriever(cfg, logger, opener),
		closer:    closer,
	}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// writeOutput encodes v as json or yaml
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (valid: json, yaml)", format)
	}
}
