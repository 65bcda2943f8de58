package types

import (
	"context"
	"strings"
	"time"
)

// CollectionRecord represents the summary statistics of a single NFT collection
type CollectionRecord struct {
	ID                 string  `json:"id" yaml:"id"`
	Name               string  `json:"name" yaml:"name"`
	Supply             *int64  `json:"supply,omitempty" yaml:"supply,omitempty"`
	ListingCount       *int64  `json:"listing_count,omitempty" yaml:"listing_count,omitempty"`
	OwnerCount         *int64  `json:"owner_count,omitempty" yaml:"owner_count,omitempty"`
	FloorPrice         float64 `json:"floor_price" yaml:"floor_price"`
	Volume             float64 `json:"volume" yaml:"volume"`
	DaysSinceLastTrade *int64  `json:"days_since_last_trade,omitempty" yaml:"days_since_last_trade,omitempty"`
}

// Marketplace identifies a supported marketplace or explorer
type Marketplace string

const (
	OpenSea      Marketplace = "opensea"
	TofuNFT      Marketplace = "tofunft"
	PancakeSwap  Marketplace = "pancakeswap"
	Rarible      Marketplace = "rarible"
	GhostMarket  Marketplace = "ghostmarket"
	Cryptocom    Marketplace = "cryptocom"
	Gem          Marketplace = "gem"
	LooksRare    Marketplace = "looksrare"
	NFTrade      Marketplace = "nftrade"
	Solanart     Marketplace = "solanart"
	MagicEden    Marketplace = "magiceden"
	XANALIA      Marketplace = "xanalia"
	Coinbase     Marketplace = "coinbase"
	NiftyGateway Marketplace = "niftygateway"

	// Explorers index collections across marketplaces
	NFTgeek Marketplace = "nftgeek"
	ICScan  Marketplace = "icscan"

	// Deprecated: covered by NFTgeek
	Entrepot Marketplace = "entrepot"
	CetoSwap Marketplace = "cetoswap"
	CCC      Marketplace = "ccc"
	Jelly    Marketplace = "jelly"
	YUMI     Marketplace = "yumi"
)

// Marketplaces lists every identifier of the enumeration, in declaration order
var Marketplaces = []Marketplace{
	OpenSea, TofuNFT, PancakeSwap, Rarible, GhostMarket, Cryptocom, Gem, LooksRare,
	NFTrade, Solanart, MagicEden, XANALIA, Coinbase, NiftyGateway,
	NFTgeek, ICScan,
	Entrepot, CetoSwap, CCC, Jelly, YUMI,
}

// Config holds the configuration for the retriever and its page sessions
type Config struct {
	SettleWait   time.Duration `mapstructure:"settle_wait"`
	ImplicitWait time.Duration `mapstructure:"implicit_wait"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	Verbose      bool          `mapstructure:"verbose"`

	Driver       string        `mapstructure:"driver"`
	Headless     bool          `mapstructure:"headless"`
	Stealth      bool          `mapstructure:"stealth"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	UserAgent    string        `mapstructure:"user_agent"`
	WindowSize   string        `mapstructure:"window_size"`
	ProxyServer  string        `mapstructure:"proxy_server"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls logger construction in the commands
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Page session drivers
const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"
	DriverHTTP     = "http"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SettleWait:   10 * time.Second,
		ImplicitWait: 10 * time.Second,
		MaxRetries:   5,
		RetryDelay:   10 * time.Second,
		Verbose:      false,
		Driver:       DriverChromedp,
		Headless:     true,
		Stealth:      false,
		Timeout:      60 * time.Second,
		RequestDelay: 500 * time.Millisecond,
		UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		WindowSize:   "1920,1080",
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}

// PageSession is one loaded page. It owns its browser until Close is called.
type PageSession interface {
	// TextAt returns the text of the first element matching locator.
	// It fails with *ElementNotFoundError when nothing matches within the implicit wait.
	TextAt(ctx context.Context, locator string) (string, error)

	// Close releases the page and its browser. It is safe to call more than once.
	Close() error
}

// PageOpener navigates to a URL and waits the configured settle time
type PageOpener interface {
	Open(ctx context.Context, url string) (PageSession, error)
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ParseMarketplace resolves an identifier case-insensitively
func ParseMarketplace(s string) (Marketplace, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Marketplaces {
		if string(m) == want {
			return m, nil
		}
	}
	return "", &UnsupportedMarketplaceError{Marketplace: Marketplace(s)}
}
