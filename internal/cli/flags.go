package cli

import "flag"

// SyncFlags holds the CLI flags for the sync command.
type SyncFlags struct {
	ConfigPath    string
	Input         string
	DateTolerance bool
	Commit        bool
	Verbose       bool
}

// ParseSyncFlags parses command line flags for the sync command.
func ParseSyncFlags() *SyncFlags {
	flags := &SyncFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&flags.Input, "input", "", "Path to scraped entries JSON file (required)")
	flag.BoolVar(&flags.DateTolerance, "date-tolerance", false, "Allow ±1 day date skew when matching")
	flag.BoolVar(&flags.Commit, "yes", false, "Commit every proposed update and create without review")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
