// Package server exposes the analyzer over MCP on the stdio transport.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"srcfacts/internal/analyzer"
	"srcfacts/internal/config"
	"srcfacts/internal/entrypoints"
	"srcfacts/internal/extractors"
	"srcfacts/internal/facts"
)

// Server wraps the MCP server and connects it to the analyzer pipeline.
type Server struct {
	mcp *mcp.Server
	cfg *config.Config
	reg *extractors.Registry

	mu    sync.Mutex
	store *facts.Store
}

// New creates a new MCP server wired to the given registry.
func New(cfg *config.Config, reg *extractors.Registry) *Server {
	s := &Server{
		cfg:   cfg,
		reg:   reg,
		store: facts.NewStore(),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "srcfacts",
		Version: "0.1.0",
	}, nil)
	s.registerTools()

	return s
}

// Run starts the MCP server on the stdio transport.
func (s *Server) Run(ctx context.Context) error {
	log.Println("[server] starting MCP server on stdio transport")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// analyzeFileArgs are the arguments for the analyze_file tool.
type analyzeFileArgs struct {
	Path string `json:"path" jsonschema:"Path to the source file to analyze"`
}

// analyzeFolderArgs are the arguments for the analyze_folder tool.
type analyzeFolderArgs struct {
	Path      string `json:"path" jsonschema:"Path to the folder to analyze"`
	Recursive *bool  `json:"recursive,omitempty" jsonschema:"Recurse into subfolders. Defaults to the configured value."`
}

// detectEntrypointsArgs are the arguments for the detect_entrypoints tool.
type detectEntrypointsArgs struct {
	Path string `json:"path" jsonschema:"Path to the project root to scan for entry points"`
}

// queryFactsArgs are the arguments for the query_facts tool.
type queryFactsArgs struct {
	Role     string `json:"role,omitempty" jsonschema:"Filter by role: service, cli, library, test, config, build, documentation, entry_point, utility, or unknown"`
	Language string `json:"language,omitempty" jsonschema:"Filter by language (e.g. python, javascript, yaml)"`
	Name     string `json:"name,omitempty" jsonschema:"Filter by filename using substring match"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_file",
		Description: "Analyze a single source file. Returns its extracted structures, signals, roles, evidence, and confidence as JSON.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args analyzeFileArgs) (*mcp.CallToolResult, any, error) {
		absPath, err := filepath.Abs(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid path: %v", err)), nil, nil
		}

		fact, err := s.reg.Analyze(absPath)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil, nil
		}

		s.mu.Lock()
		s.store.Add(fact)
		s.mu.Unlock()

		return jsonResult(fact)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_folder",
		Description: "Analyze a folder of source files. Returns a module summary with the primary role, core files, capabilities, and external dependencies as JSON.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args analyzeFolderArgs) (*mcp.CallToolResult, any, error) {
		cfg := *s.cfg
		if args.Recursive != nil {
			cfg.Recursive = *args.Recursive
		}

		a := analyzer.New(&cfg, s.reg)
		summary, err := a.Analyze(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil, nil
		}

		s.mu.Lock()
		s.store = a.Store()
		s.mu.Unlock()

		if cfg.Output.Dir != "" {
			path := filepath.Join(cfg.Output.Dir, "facts.jsonl")
			if err := a.Store().WriteJSONLFile(path); err != nil {
				log.Printf("[server] warning: failed to write facts artifact: %v", err)
			}
		}

		return jsonResult(summary)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "detect_entrypoints",
		Description: "Detect how a project is started: entry point files, Makefile targets, package.json scripts, Dockerfile commands, and runtime dependencies.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args detectEntrypointsArgs) (*mcp.CallToolResult, any, error) {
		det := entrypoints.NewDetector(s.cfg)
		rc, err := det.Detect(args.Path)
		if err != nil {
			return errorResult(fmt.Sprintf("detection failed: %v", err)), nil, nil
		}
		return jsonResult(rc)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "query_facts",
		Description: "Query the file facts collected by previous analyze calls, filtered by role, language, or filename. Returns matching facts as JSON.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args queryFactsArgs) (*mcp.CallToolResult, any, error) {
		s.mu.Lock()
		store := s.store
		s.mu.Unlock()

		if store.Count() == 0 {
			return errorResult("No facts available. Run analyze_file or analyze_folder first."), nil, nil
		}

		results := store.Query(facts.Role(args.Role), args.Language, args.Name)
		if len(results) == 0 {
			return errorResult("No facts match the query."), nil, nil
		}

		// Limit output
		truncated := false
		if len(results) > 100 {
			results = results[:100]
			truncated = true
		}

		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to marshal results: %v", err)), nil, nil
		}
		text := string(data)
		if truncated {
			text += fmt.Sprintf("\n\n... (showing 100 of %d results, refine your query)", store.Count())
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, nil, nil
	})
}

// jsonResult marshals a payload as indented JSON tool output.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to marshal result: %v", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

// errorResult wraps an error message in a tool result.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
