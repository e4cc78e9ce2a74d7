package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/viant/tracked-mcp/mcp"
	mcpconfig "github.com/viant/tracked-mcp/mcp/config"
)

var (
	cfgPath  string
	logLevel string

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command runs.
func setConfigPath(p string) { cfgPath = p }

func setLogLevel(level string) { logLevel = level }

// loadConfig reads the configuration file, when given, and applies the
// --log-level override.
func loadConfig() (*mcpconfig.Config, error) {
	cfg := &mcpconfig.Config{}
	if cfgPath != "" {
		var err error
		if cfg, err = mcpconfig.Load(cfgPath); err != nil {
			return nil, err
		}
		// Dump the effective config when debugging deployments.
		if debug := os.Getenv("TRACKED_MCP_DEBUG_CONFIG"); debug == "1" {
			_ = json.NewEncoder(os.Stderr).Encode(cfg)
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// initLogger installs the default slog logger writing to stderr; stdout is
// reserved for command output.
func initLogger(cfg *mcpconfig.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// serviceSingleton initialises an mcp.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		cfg, err := loadConfig()
		if err != nil {
			svcErr = err
			return
		}
		if svcErr = initLogger(cfg); svcErr != nil {
			return
		}
		svcInst, svcErr = mcp.New(context.Background(), mcp.WithConfig(cfg))
		if svcErr == nil {
			svcErr = svcInst.Start(context.Background())
		}
	})
	return svcInst, svcErr
}
