// Package mcp exposes a WebFit session to MCP clients: browsing the
// exercise catalog by muscle group and equipment, and editing the workout.
package mcp

import (
	"log/slog"

	"github.com/claude/webfit/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(sess *session.Session, shareBase, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("WebFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("WebFit exercise browser. Expand muscle groups to list exercises, narrow them by equipment, and build a workout that can be shared as a link."),
	)

	h := &handlers{sess: sess, shareBase: shareBase, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListMuscleGroups, Handler: h.listMuscleGroups},
		server.ServerTool{Tool: toolListEquipment, Handler: h.listEquipment},
		server.ServerTool{Tool: toolSelectGroup, Handler: h.selectGroup},
		server.ServerTool{Tool: toolDeselectGroup, Handler: h.deselectGroup},
		server.ServerTool{Tool: toolApplyEquipmentFilters, Handler: h.applyEquipmentFilters},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolAddExercise, Handler: h.addExercise},
		server.ServerTool{Tool: toolRemoveExercise, Handler: h.removeExercise},
		server.ServerTool{Tool: toolSetSets, Handler: h.setSets},
		server.ServerTool{Tool: toolSetReps, Handler: h.setReps},
		server.ServerTool{Tool: toolRenameWorkout, Handler: h.renameWorkout},
		server.ServerTool{Tool: toolExerciseHowTo, Handler: h.exerciseHowTo},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWorkout, Handler: h.workout},
	)

	return s
}

// Serve runs the server over stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	sess      *session.Session
	shareBase string
	log       *slog.Logger
}

// --- Resource definitions ---

var resWorkout = mcp.NewResource(
	"webfit://workout",
	"Workout",
	mcp.WithResourceDescription("The current workout with its share link"),
	mcp.WithMIMEType("application/json"),
)
