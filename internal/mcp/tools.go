package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

var toolParseWorkoutLog = mcp.NewTool("parse_workout_log",
	mcp.WithDescription("Parse a markdown workout log (### YYYY-MM-DD headers, numbered exercises, indented 'weight на reps' set lines) and return the structured document."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Markdown log text")),
)

var toolGetDocument = mcp.NewTool("get_document",
	mcp.WithDescription("Return the document built from all configured workout logs, sorted by date."),
)

var toolLookupMuscleGroup = mcp.NewTool("lookup_muscle_group",
	mcp.WithDescription("Resolve an exercise name to its muscle group. Matching ignores case and surrounding whitespace."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name, e.g. 'Жим'")),
)

var toolListMuscleGroups = mcp.NewTool("list_muscle_groups",
	mcp.WithDescription("List the muscle-group taxonomy. Sub-groups carry the id of their parent in parent_id."),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-workout best set for an exercise with its Epley estimated one-rep max."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive)")),
)

func (h *handlers) parseWorkoutLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	doc, err := h.src.Parse(ctx, text)
	if err != nil {
		h.log.Error("mcp parse_workout_log", "error", err)
		return mcp.NewToolResultError("parse failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(doc)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.src.Document(ctx)
	if err != nil {
		h.log.Error("mcp get_document", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(doc)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) lookupMuscleGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	group, ok, err := h.src.Lookup(ctx, name)
	if err != nil {
		h.log.Error("mcp lookup_muscle_group", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var mg *string
	if ok {
		mg = &group
	}
	result, err := mcp.NewToolResultJSON(map[string]any{
		"name":         name,
		"muscle_group": mg,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listMuscleGroups(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := h.src.MuscleGroups(ctx)
	if err != nil {
		h.log.Error("mcp list_muscle_groups", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(groups)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	points, err := h.src.Progress(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
