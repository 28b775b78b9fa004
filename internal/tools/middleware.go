package tools

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LoggingMiddleware logs the outcome and duration of every tool call.
func LoggingMiddleware(logger hclog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			args := []any{"tool", req.Params.Name, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.Error("Tool call errored", append(args, "error", err)...)
			case result != nil && result.IsError:
				logger.Info("Tool call returned an error result", args...)
			default:
				logger.Debug("Tool call completed", args...)
			}

			return result, err
		}
	}
}
