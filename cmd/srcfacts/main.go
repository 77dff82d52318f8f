package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"srcfacts/internal/analyzer"
	"srcfacts/internal/config"
	"srcfacts/internal/entrypoints"
	"srcfacts/internal/extractors"
	"srcfacts/internal/server"
)

func main() {
	// Ensure log output goes to stderr, never stdout (stdout carries the
	// JSON payload in CLI mode and JSON-RPC in MCP mode)
	log.SetOutput(os.Stderr)

	command := ""
	target := ""
	cfgPath := ""
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --config requires a path")
				usage()
			}
			i++
			cfgPath = args[i]
		case command == "":
			command = args[i]
		case target == "":
			target = args[i]
		default:
			fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", args[i])
			usage()
		}
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		} else {
			cfg = loaded
		}
	}

	reg := extractors.Default(cfg)

	switch command {
	case "analyze":
		if target == "" {
			fmt.Fprintln(os.Stderr, "error: analyze requires a path")
			usage()
		}
		runAnalyze(cfg, reg, target)
	case "entrypoints":
		if target == "" {
			fmt.Fprintln(os.Stderr, "error: entrypoints requires a path")
			usage()
		}
		runEntrypoints(cfg, target)
	case "":
		// MCP server mode (default)
		srv := server.New(cfg, reg)
		if err := srv.Run(context.Background()); err != nil {
			log.Fatalf("server error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", command)
		usage()
	}
}

// runAnalyze prints the fact for a file, or the module summary for a
// directory, as JSON on stdout.
func runAnalyze(cfg *config.Config, reg *extractors.Registry, target string) {
	info, err := os.Stat(target)
	if err != nil {
		log.Fatalf("invalid path %s: %v", target, err)
	}

	if !info.IsDir() {
		fact, err := reg.Analyze(target)
		if err != nil {
			log.Fatalf("analysis failed: %v", err)
		}
		printJSON(fact)
		return
	}

	a := analyzer.New(cfg, reg)
	summary, err := a.Analyze(target)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	printJSON(summary)

	if cfg.Output.Dir != "" {
		path := filepath.Join(cfg.Output.Dir, "facts.jsonl")
		if err := a.Store().WriteJSONLFile(path); err != nil {
			log.Printf("[main] warning: failed to write facts artifact: %v", err)
		}
	}
}

// runEntrypoints prints the project's run configuration as JSON on stdout.
func runEntrypoints(cfg *config.Config, target string) {
	det := entrypoints.NewDetector(cfg)
	rc, err := det.Detect(target)
	if err != nil {
		log.Fatalf("detection failed: %v", err)
	}
	printJSON(rc)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal result: %v", err)
	}
	fmt.Println(string(data))
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: srcfacts [--config path] [command]

commands:
  analyze <path>      analyze a file or folder and print facts as JSON
  entrypoints <path>  detect entry points and run configuration
  (none)              run as an MCP server on stdio`)
	os.Exit(1)
}
