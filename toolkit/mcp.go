package toolkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the implementation name the MCP server announces.
const ServerName = "linefmt"

// NewMCPServer returns an MCP server exposing every catalog tool. Tools are
// published under their plain names; a name shared by two namespaces is
// published as "namespace.name" instead.
func NewMCPServer(c *Catalog, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	tools := c.Tools()
	seen := make(map[string]int, len(tools))
	for _, t := range tools {
		seen[t.Name]++
	}
	for _, t := range tools {
		tool := t.Tool
		if seen[t.Name] > 1 {
			tool.Name = t.Namespace + "." + t.Name
		}
		server.AddTool(&tool, c.handler(ToolID(t)))
	}
	return server
}

// ServeStdio serves the catalog over stdin and stdout until ctx is done or
// the client disconnects.
func ServeStdio(ctx context.Context, c *Catalog, version string) error {
	return NewMCPServer(c, version).Run(ctx, &mcp.StdioTransport{})
}

func (c *Catalog) handler(id string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(fmt.Errorf("%w: %w", ErrInvalidArgs, err)), nil
			}
		}
		out, err := c.Call(ctx, id, args)
		if err != nil {
			return errorResult(err), nil
		}
		data, err := json.Marshal(out)
		if err != nil {
			return errorResult(fmt.Errorf("encode result: %w", err)), nil
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
			StructuredContent: json.RawMessage(data),
		}, nil
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
