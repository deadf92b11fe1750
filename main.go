package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/countly/countly-mcp-server/internal/app"
	"github.com/countly/countly-mcp-server/internal/config"
	"github.com/countly/countly-mcp-server/internal/logging"
	"github.com/countly/countly-mcp-server/internal/version"
)

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "", "Transport mode: http or stdio (overrides MCP_MODE)")
	httpAddr := flag.String("http", "", "MCP HTTP listen address (overrides MCP_HTTP_ADDR, e.g. :3333)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger, closeLog, err := logging.New("mcp-server", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	logger.Infof("countly-mcp-server %s starting in %s mode against %s", version.Get(), cfg.Mode, cfg.ServerURL)
	if err := app.Run(cfg, logger); err != nil {
		logger.WithError(err).Error("server exited")
		os.Exit(1)
	}
}
