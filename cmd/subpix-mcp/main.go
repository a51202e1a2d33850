package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/subpixel-edges-mcp/internal/config"
	"github.com/ironsheep/subpixel-edges-mcp/internal/server"
	"github.com/ironsheep/subpixel-edges-mcp/internal/subpix"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func printHelp() {
	fmt.Println("subpixel-edges-mcp - MCP server for sub-pixel edge detection")
	fmt.Println()
	fmt.Println("Usage: subpixel-edges-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>  JSON file with detection defaults")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SUBPIX_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  SUBPIX_MCP_CONFIG=<path>      Detection defaults when --config is absent")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}

func main() {
	configPath := os.Getenv("SUBPIX_MCP_CONFIG")

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("subpixel-edges-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			printHelp()
			return
		case arg == "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", arg)
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("SUBPIX_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Sub-pixel Edges MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		subpix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.DefaultDetectionConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
		if debug {
			log.Printf("Loaded detection defaults from %s", configPath)
		}
	}

	srv := server.New(server.WithConfig(cfg), server.WithDebug(debug))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
