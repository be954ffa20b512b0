package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/app"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var (
		configPathFlag = flag.String("config", "", "path to config file (default ~/.llmkit/config.toml)")
		bindFlag       = flag.String("bind", "", "HTTP bind address")
		endpointFlag   = flag.String("endpoint", "", "inference backend endpoint")
		dataDirFlag    = flag.String("data-dir", "", "base data dir (default ~/.llmkit)")
	)
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = filepath.Join(config.Default().DataDir, "config.toml")
	}

	relayConfig, err := config.LoadOrCreate(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setIfNotEmpty := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}

	setIfNotEmpty(&relayConfig.Bind, *bindFlag)
	setIfNotEmpty(&relayConfig.Endpoint, *endpointFlag)
	setIfNotEmpty(&relayConfig.DataDir, *dataDirFlag)

	if err := app.RunServer(relayConfig); err != nil {
		logger.Error("relay server failed", "error", err)
		os.Exit(1)
	}
}
