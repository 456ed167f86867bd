package clickql

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zoobzio/clickql/internal/types"
)

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations convert an AST to dialect-specific SQL with named parameters.
type Renderer interface {
	// Render converts an AST to a QueryResult with dialect-specific SQL.
	Render(ast *types.AST) (*types.QueryResult, error)

	// RenderCompound converts a CompoundQuery (UNION, INTERSECT, EXCEPT) to SQL.
	RenderCompound(query *types.CompoundQuery) (*types.QueryResult, error)
}

// RendererFactory creates a new renderer instance for a registered dialect.
type RendererFactory func() Renderer

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]RendererFactory)
)

// RegisterDialect makes a dialect renderer available by the given alias.
// Dialect packages call this from init, so hosts discover a backend with a
// blank import and resolve it by name. It panics if the factory is nil or
// RegisterDialect is called twice for the same alias.
func RegisterDialect(alias string, factory RendererFactory) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if factory == nil {
		panic("clickql: RegisterDialect factory is nil")
	}
	if _, dup := dialects[alias]; dup {
		panic("clickql: RegisterDialect called twice for dialect " + alias)
	}
	dialects[alias] = factory
}

// Dialect returns a renderer for a registered dialect alias.
func Dialect(alias string) (Renderer, error) {
	dialectsMu.RLock()
	factory, ok := dialects[alias]
	dialectsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (forgotten import?)", alias)
	}
	return factory(), nil
}

// Dialects returns a sorted list of registered dialect aliases.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	list := make([]string, 0, len(dialects))
	for alias := range dialects {
		list = append(list, alias)
	}
	sort.Strings(list)
	return list
}
