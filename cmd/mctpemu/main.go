// Command mctpemu runs an emulated MCTP endpoint for test purposes.
//
// The emulator listens for framed bus calls, matches each inbound MCTP
// payload against a declarative rule table, and replies with the configured
// response: immediately, after a processing delay, or not at all.
//
// Usage:
//
//	mctpemu [flags]
//
// Flags:
//
//	-rules string      Rule-table document path (default "req_resp.json")
//	-listen string     Bus listen address (default ":5660")
//	-eid int           Endpoint id (default 8)
//	-config string     Configuration file path (YAML)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-log-file string   CBOR capture file for dispatch events
//	-advertise         Advertise the bus endpoint over mDNS
//
// Examples:
//
//	# Run with a rule file and defaults
//	mctpemu -rules /usr/share/mctp-emulator/req_resp.json
//
//	# Run on a fixed port with mDNS advertising and a capture file
//	mctpemu -rules rules.json -listen :5660 -advertise -log-file capture.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/mctp-emulator/mctpemu-go/pkg/discovery"
	"github.com/mctp-emulator/mctpemu-go/pkg/emulator"
	"github.com/mctp-emulator/mctpemu-go/pkg/log"
	"github.com/mctp-emulator/mctpemu-go/pkg/rules"
	"github.com/mctp-emulator/mctpemu-go/pkg/transport"
)

// Config holds the emulator configuration. File values are overridden by
// flags given on the command line.
type Config struct {
	Rules     string `yaml:"rules"`
	Listen    string `yaml:"listen"`
	EID       uint8  `yaml:"eid"`
	LogLevel  string `yaml:"log-level"`
	LogFile   string `yaml:"log-file"`
	Advertise bool   `yaml:"advertise"`
}

func defaultConfig() Config {
	return Config{
		Rules:    "req_resp.json",
		Listen:   ":5660",
		EID:      emulator.DefaultEID,
		LogLevel: "info",
	}
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func slogLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mctpemu: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := defaultConfig()

	configFile := flag.String("config", "", "configuration file path (YAML)")
	rulesPath := flag.String("rules", cfg.Rules, "rule-table document path")
	listen := flag.String("listen", cfg.Listen, "bus listen address")
	eid := flag.Int("eid", int(cfg.EID), "endpoint id")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	logFile := flag.String("log-file", cfg.LogFile, "CBOR capture file for dispatch events")
	advertise := flag.Bool("advertise", cfg.Advertise, "advertise the bus endpoint over mDNS")
	flag.Parse()

	if *configFile != "" {
		if err := loadConfigFile(*configFile, &cfg); err != nil {
			return err
		}
	}

	// Flags given explicitly override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rules":
			cfg.Rules = *rulesPath
		case "listen":
			cfg.Listen = *listen
		case "eid":
			cfg.EID = uint8(*eid)
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = *logFile
		case "advertise":
			cfg.Advertise = *advertise
		}
	})

	level, err := slogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	loggers := []log.Logger{
		log.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
	}
	if cfg.LogFile != "" {
		fl, err := log.NewFileLogger(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open capture file: %w", err)
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}
	logger := log.NewMultiLogger(loggers...)

	ident := emulator.DefaultIdentity()
	ident.EID = cfg.EID

	server := transport.NewServer(transport.ServerConfig{
		Addr:   cfg.Listen,
		Logger: logger,
	})

	responder := emulator.New(emulator.Config{
		Identity: ident,
		Source:   rules.NewFileSource(cfg.Rules),
		Sink:     server,
		Logger:   logger,
	})
	defer responder.Close()

	server.RegisterHandler(responder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return err
	}
	defer server.Stop()

	if cfg.Advertise {
		if addr, ok := server.Addr().(*net.TCPAddr); ok {
			advertiser := discovery.NewAdvertiser(discovery.Config{})
			if err := advertiser.Advertise(addr.Port, ident); err != nil {
				logger.Log(log.Warn(log.StageBus, "mDNS advertising failed", err))
			} else {
				defer advertiser.Stop()
			}
		}
	}

	slog.Info("mctpemu running",
		"listen", server.Addr().String(),
		"rules", cfg.Rules,
		"eid", ident.EID,
	)

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}
