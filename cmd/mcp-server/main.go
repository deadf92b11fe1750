package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/countly/countly-mcp-server/internal/app"
	"github.com/countly/countly-mcp-server/internal/config"
	"github.com/countly/countly-mcp-server/internal/logging"
)

func main() {
	_ = godotenv.Load()

	httpAddr := flag.String("http", "", "MCP HTTP listen address (overrides MCP_HTTP_ADDR, e.g. :3333)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.Mode = config.ModeHTTP
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}

	logger, closeLog, err := logging.New("mcp-server", cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	log.Printf("MCP server listening on %s", cfg.HTTPAddr)
	if err := app.Run(cfg, logger); err != nil {
		closeLog()
		log.Fatalf("MCP server error: %v", err)
	}
}
