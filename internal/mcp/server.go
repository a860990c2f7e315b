package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("SleepLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("SleepLog sleep diary server. Look up last night's sleep and rolling averages of bed time, wake time, time in bed and morning feeling. All data is scoped to the configured user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetLastNightSleep, Handler: h.getLastNightSleep},
		server.ServerTool{Tool: sleepAveragesTool(windowDaysOf(ds)), Handler: h.getSleepAverages},
	)

	s.AddResources(
		server.ServerResource{Resource: resAverages, Handler: h.averages},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resAverages = mcp.NewResource(
	"sleeplog://averages",
	"Sleep Averages",
	mcp.WithResourceDescription("Averages over the default reporting window ending today"),
	mcp.WithMIMEType("application/json"),
)
