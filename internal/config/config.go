package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	MtopOracleAddress   string
	NativeOracleAddress string
	LedgerAddress       string
	AdminKey            string
	FeeCollector        string
	CustodyAccount      string
	DescriptorBaseURI   string
	MtopDecimals        uint8
	PriceSampleInterval time.Duration
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultCustodyAccount      = "passmint-custody"
	defaultDescriptorBaseURI   = "https://passes.example.com/meta/"
	defaultMtopDecimals        = 18
	defaultPriceSampleInterval = 30 * time.Second
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		MtopOracleAddress:   getString(lookup, "MTOP_ORACLE_ADDRESS", ""),
		NativeOracleAddress: getString(lookup, "NATIVE_ORACLE_ADDRESS", ""),
		LedgerAddress:       getString(lookup, "LEDGER_ADDRESS", ""),
		AdminKey:            getString(lookup, "ADMIN_KEY", ""),
		FeeCollector:        getString(lookup, "FEE_COLLECTOR", ""),
		CustodyAccount:      getString(lookup, "CUSTODY_ACCOUNT", defaultCustodyAccount),
		DescriptorBaseURI:   getString(lookup, "DESCRIPTOR_BASE_URI", defaultDescriptorBaseURI),
		MtopDecimals:        getDecimals(lookup, "MTOP_DECIMALS", defaultMtopDecimals),
		PriceSampleInterval: getDuration(lookup, "PRICE_SAMPLE_INTERVAL", defaultPriceSampleInterval),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("passmint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sampleIntervalStr  = cfg.PriceSampleInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		mtopDecimalsInt    = int(cfg.MtopDecimals)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.MtopOracleAddress, "mtop-oracle", cfg.MtopOracleAddress, "Membership token price oracle URL")
	fs.StringVar(&cfg.NativeOracleAddress, "native-oracle", cfg.NativeOracleAddress, "Payment currency price oracle URL")
	fs.StringVar(&cfg.LedgerAddress, "ledger", cfg.LedgerAddress, "Token ledger base URL")
	fs.StringVar(&cfg.AdminKey, "admin-key", cfg.AdminKey, "Key of the privileged principal")
	fs.StringVar(&cfg.FeeCollector, "fee-collector", cfg.FeeCollector, "Fee collector ledger account")
	fs.StringVar(&cfg.CustodyAccount, "custody-account", cfg.CustodyAccount, "Service custody ledger account")
	fs.StringVar(&cfg.DescriptorBaseURI, "descriptor-base", cfg.DescriptorBaseURI, "Base URI for pass descriptors")
	fs.IntVar(&mtopDecimalsInt, "mtop-decimals", mtopDecimalsInt, "Membership token decimal places")
	fs.StringVar(&sampleIntervalStr, "price-sample-interval", sampleIntervalStr, "Interval between oracle price samples")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PriceSampleInterval, err = time.ParseDuration(sampleIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid price sample interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if mtopDecimalsInt < 0 || mtopDecimalsInt > 30 {
		return nil, fmt.Errorf("mtop decimals out of range: %d", mtopDecimalsInt)
	}
	cfg.MtopDecimals = uint8(mtopDecimalsInt)

	if keyFile, ok := lookup("ADMIN_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read admin key file: %w", err)
		}
		// secret files routinely end with a newline
		cfg.AdminKey = strings.TrimSpace(string(content))
	}

	if cfg.PriceSampleInterval <= 0 {
		cfg.PriceSampleInterval = defaultPriceSampleInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.MtopOracleAddress == "" {
		return nil, fmt.Errorf("membership token oracle address must be provided")
	}

	if cfg.NativeOracleAddress == "" {
		return nil, fmt.Errorf("payment currency oracle address must be provided")
	}

	if cfg.LedgerAddress == "" {
		return nil, fmt.Errorf("ledger address must be provided")
	}

	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("admin key must be provided")
	}

	if cfg.FeeCollector == "" {
		return nil, fmt.Errorf("fee collector account must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDecimals(lookup envLookup, key string, def uint8) uint8 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 30 {
			return uint8(n)
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
