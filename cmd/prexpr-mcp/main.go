package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/prexpr/internal/version"
	"github.com/ludo-technologies/prexpr/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

const serverName = "prexpr"

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file (default: discovered from the working directory)")
	pflag.Parse()

	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	serverVersion := version.Short()

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	deps := mcp.NewDependencies(nil, *configPath)
	mcp.RegisterTools(server, mcp.NewHandlerSet(deps))

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	if *configPath != "" {
		log.Printf("Using configuration %s\n", *configPath)
	}
	log.Println("Registered tools:")
	for _, name := range mcp.ToolNames {
		log.Printf("  - %s\n", name)
	}
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
