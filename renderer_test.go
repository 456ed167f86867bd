package clickql_test

import (
	"strings"
	"testing"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/clickql/internal/types"
)

// stubRenderer is a minimal Renderer for registry tests.
type stubRenderer struct{}

func (stubRenderer) Render(*types.AST) (*types.QueryResult, error) {
	return &types.QueryResult{SQL: "stub"}, nil
}

func (stubRenderer) RenderCompound(*types.CompoundQuery) (*types.QueryResult, error) {
	return &types.QueryResult{SQL: "stub compound"}, nil
}

func TestRegisterDialect(t *testing.T) {
	clickql.RegisterDialect("stub", func() clickql.Renderer { return stubRenderer{} })

	r, err := clickql.Dialect("stub")
	if err != nil {
		t.Fatalf("Dialect() error = %v", err)
	}

	result, err := r.Render(&types.AST{Operation: types.OpSelect, Target: types.Table{Name: "t"}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if result.SQL != "stub" {
		t.Errorf("SQL = %q, want stub", result.SQL)
	}
}

func TestRegisterDialect_DuplicatePanics(t *testing.T) {
	clickql.RegisterDialect("dup", func() clickql.Renderer { return stubRenderer{} })

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for duplicate registration")
		}
	}()
	clickql.RegisterDialect("dup", func() clickql.Renderer { return stubRenderer{} })
}

func TestRegisterDialect_NilFactoryPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil factory")
		}
	}()
	clickql.RegisterDialect("nilfactory", nil)
}

func TestDialect_Unknown(t *testing.T) {
	_, err := clickql.Dialect("no_such_dialect")
	if err == nil {
		t.Fatal("Expected error for unknown dialect")
	}
	if !strings.Contains(err.Error(), "forgotten import") {
		t.Errorf("Expected import hint in error, got: %v", err)
	}
}

func TestDialects_Sorted(t *testing.T) {
	clickql.RegisterDialect("zzz_last", func() clickql.Renderer { return stubRenderer{} })
	clickql.RegisterDialect("aaa_first", func() clickql.Renderer { return stubRenderer{} })

	names := clickql.Dialects()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Dialects() not sorted: %v", names)
		}
	}
}
