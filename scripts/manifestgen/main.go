// Command manifestgen renders the server's tool manifest (the tools/list
// payload) to a JSON file for publishing alongside releases.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/countly/countly-mcp-server/internal/app"
	"github.com/countly/countly-mcp-server/internal/countly"
	"github.com/countly/countly-mcp-server/internal/protocol"
	"github.com/countly/countly-mcp-server/internal/version"
)

// Manifest is the published tool catalog.
type Manifest struct {
	Name        string                    `json:"name"`
	Version     string                    `json:"version"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Tools       []protocol.ToolDescriptor `json:"tools"`
}

func main() {
	outDir := flag.String("out", "dist", "output directory for manifest.json")
	flag.Parse()

	manifest := Build(time.Now().UTC())
	if err := writeManifest(*outDir, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("manifest written to %s (%d tools)\n", filepath.Join(*outDir, "manifest.json"), len(manifest.Tools))
}

// Build assembles the manifest from the real toolbox so the published
// catalog cannot drift from the served one. Descriptors need no live
// server, so the tool context points at a placeholder.
func Build(now time.Time) Manifest {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := countly.NewClient("http://localhost", 0)
	tc := countly.NewToolContext(client, 0, logger.WithField("component", "manifestgen"))

	return Manifest{
		Name:        "countly-mcp-server",
		Version:     version.Get().Version,
		GeneratedAt: now,
		Tools:       app.NewToolbox(tc).Describe(),
	}
}

func writeManifest(dir string, m Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.json"), append(raw, '\n'), 0o644)
}
