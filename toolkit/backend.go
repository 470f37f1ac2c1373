package toolkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler executes one tool call.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// ToolDef defines a tool with its handler.
type ToolDef struct {
	Name         string
	Title        string
	Description  string
	InputSchema  map[string]any
	OutputSchema map[string]any
	Annotations  *mcp.ToolAnnotations
	Tags         []string
	Handler      Handler

	// Doc is the long-form documentation served by Catalog.Describe.
	Doc tooldoc.DocEntry
}

// Backend is a named group of in-process tool handlers. The backend name is
// the namespace of its tools.
type Backend struct {
	name  string
	mu    sync.RWMutex
	tools map[string]ToolDef
}

// NewBackend creates an empty backend.
func NewBackend(name string) *Backend {
	return &Backend{
		name:  name,
		tools: make(map[string]ToolDef),
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return b.name
}

// Register adds or replaces a tool. A missing input schema is registered as
// an empty object schema.
func (b *Backend) Register(def ToolDef) error {
	if def.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTool)
	}
	if def.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidTool, def.Name)
	}
	if def.InputSchema == nil {
		def.InputSchema = map[string]any{"type": "object"}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tools[def.Name] = def
	return nil
}

// Def returns the definition registered under name.
func (b *Backend) Def(name string) (ToolDef, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	def, ok := b.tools[name]
	return def, ok
}

// ListTools returns the backend's tools sorted by name.
func (b *Backend) ListTools(_ context.Context) ([]model.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tools := make([]model.Tool, 0, len(b.tools))
	for _, def := range b.tools {
		tools = append(tools, model.Tool{
			Tool: mcp.Tool{
				Name:         def.Name,
				Title:        def.Title,
				Description:  def.Description,
				InputSchema:  def.InputSchema,
				OutputSchema: outputSchema(def.OutputSchema),
				Annotations:  def.Annotations,
			},
			Namespace: b.name,
			Tags:      model.NormalizeTags(def.Tags),
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// Execute calls the named tool.
func (b *Backend) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	def, ok := b.Def(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, FormatToolID(b.name, name))
	}
	if args == nil {
		args = map[string]any{}
	}
	return def.Handler(ctx, args)
}

// outputSchema keeps a nil map from becoming a non-nil interface.
func outputSchema(s map[string]any) any {
	if s == nil {
		return nil
	}
	return s
}

// FormatToolID joins a namespace and tool name.
func FormatToolID(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + ":" + name
}
