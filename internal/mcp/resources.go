package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/sleeplog/internal/api"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) averages(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	avg, err := h.ds.Averages(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(api.NewSleepAveragesResponse(avg))
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
