package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(src Source, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("gymlog workout log server. Parse markdown training logs, read the structured workout document, resolve exercises to muscle groups and chart per-exercise progress."),
	)

	h := &handlers{src: src, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolParseWorkoutLog, Handler: h.parseWorkoutLog},
		server.ServerTool{Tool: toolGetDocument, Handler: h.getDocument},
		server.ServerTool{Tool: toolLookupMuscleGroup, Handler: h.lookupMuscleGroup},
		server.ServerTool{Tool: toolListMuscleGroups, Handler: h.listMuscleGroups},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
	)

	s.AddResources(
		server.ServerResource{Resource: resDocument, Handler: h.documentResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src Source
	log *slog.Logger
}

var resDocument = mcp.NewResource(
	"gymlog://document",
	"Workout Document",
	mcp.WithResourceDescription("All parsed workouts with the muscle-group taxonomy and exercise catalog"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) documentResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.src.Document(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
