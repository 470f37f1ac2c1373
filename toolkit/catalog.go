package toolkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
)

// Summary is a search hit.
type Summary = index.Summary

type docStore interface {
	RegisterDoc(id string, entry tooldoc.DocEntry) error
	DescribeTool(id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error)
}

// Catalog indexes the tools of its backends and dispatches calls by ID.
//
// Contract:
// - Concurrency: safe for concurrent use once constructed.
// - Errors: Call returns ErrInvalidToolID, ErrToolNotFound, or the handler's error.
type Catalog struct {
	idx  index.Index
	docs docStore

	mu       sync.RWMutex
	backends map[string]*Backend
	tools    []model.Tool
}

// NewCatalog indexes every tool of the given backends. Backend names must be
// unique.
func NewCatalog(ctx context.Context, backends ...*Backend) (*Catalog, error) {
	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	c := &Catalog{
		idx:      idx,
		docs:     tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx}),
		backends: make(map[string]*Backend),
	}
	for _, b := range backends {
		if err := c.add(ctx, b); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(ctx context.Context, b *Backend) error {
	if b == nil || b.Name() == "" {
		return fmt.Errorf("%w: backend without a name", ErrInvalidTool)
	}
	if _, dup := c.backends[b.Name()]; dup {
		return fmt.Errorf("%w: duplicate backend %q", ErrInvalidTool, b.Name())
	}
	tools, err := b.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("list %s tools: %w", b.Name(), err)
	}
	for _, tool := range tools {
		if err := c.idx.RegisterTool(tool, model.NewLocalBackend(b.Name())); err != nil {
			return fmt.Errorf("index %s: %w", tool.Name, err)
		}
		def, _ := b.Def(tool.Name)
		if def.Doc.Summary == "" {
			def.Doc.Summary = def.Description
		}
		if err := c.docs.RegisterDoc(FormatToolID(b.Name(), tool.Name), def.Doc); err != nil {
			return fmt.Errorf("document %s: %w", tool.Name, err)
		}
	}
	c.backends[b.Name()] = b
	c.tools = append(c.tools, tools...)
	sort.Slice(c.tools, func(i, j int) bool {
		return ToolID(c.tools[i]) < ToolID(c.tools[j])
	})
	return nil
}

// Tools returns every indexed tool sorted by ID.
func (c *Catalog) Tools() []model.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Search ranks tools against query. A non-positive limit defaults to 10.
func (c *Catalog) Search(query string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 10
	}
	return c.idx.Search(query, limit)
}

// Namespaces lists the indexed namespaces.
func (c *Catalog) Namespaces() ([]string, error) {
	return c.idx.ListNamespaces()
}

// Describe returns the documentation of the tool with the given ID.
func (c *Catalog) Describe(id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	if _, _, err := c.resolve(id); err != nil {
		return tooldoc.ToolDoc{}, err
	}
	return c.docs.DescribeTool(id, level)
}

// Call executes the tool with the given ID.
func (c *Catalog) Call(ctx context.Context, id string, args map[string]any) (any, error) {
	b, name, err := c.resolve(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Execute(ctx, name, args)
}

func (c *Catalog) resolve(id string) (*Backend, string, error) {
	ns, name, err := model.ParseToolID(id)
	if err != nil || ns == "" || name == "" {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidToolID, id)
	}
	c.mu.RLock()
	b, ok := c.backends[ns]
	c.mu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	if _, ok := b.Def(name); !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return b, name, nil
}

// ToolID returns the catalog ID of tool.
func ToolID(tool model.Tool) string {
	return FormatToolID(tool.Namespace, tool.Name)
}
