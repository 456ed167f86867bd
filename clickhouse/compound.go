package clickhouse

import (
	"fmt"
	"strings"

	"github.com/zoobzio/clickql/internal/render"
	"github.com/zoobzio/clickql/internal/types"
)

// RenderCompound converts a CompoundQuery to a QueryResult with ClickHouse SQL.
// Each operand's parameters are namespaced with a qN_ prefix so the same
// parameter name can appear in multiple operands without collision.
func (r *Renderer) RenderCompound(cq *types.CompoundQuery) (*types.QueryResult, error) {
	if err := cq.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compound query: %w", err)
	}

	for _, operand := range cq.Rest {
		switch operand.Op {
		case types.SetIntersectAll, types.SetExceptAll:
			return nil, render.NewUnsupportedFeatureError(
				dialectName, string(operand.Op),
				"use INTERSECT or EXCEPT; ClickHouse has no ALL variants for these")
		}
	}

	var params []string
	usedParams := make(map[string]bool)

	// The operand prefix lives in the callback rather than the context so
	// subquery prefixes stack on top of it (q0_sq1_x, not sq1_x).
	makeParamCallback := func(prefix string) func(types.Param) string {
		return func(param types.Param) string {
			name := prefix + param.Name
			placeholder := "@" + name
			if !usedParams[name] {
				params = append(params, name)
				usedParams[name] = true
			}
			return placeholder
		}
	}

	var body strings.Builder

	ctx := newRenderContext(makeParamCallback("q0_"))
	if err := r.renderSelect(cq.First, &body, ctx); err != nil {
		return nil, fmt.Errorf("rendering operand 0: %w", err)
	}

	for i, operand := range cq.Rest {
		body.WriteString(" ")
		body.WriteString(string(operand.Op))
		body.WriteString(" ")

		opCtx := newRenderContext(makeParamCallback(fmt.Sprintf("q%d_", i+1)))
		if err := r.renderSelect(operand.AST, &body, opCtx); err != nil {
			return nil, fmt.Errorf("rendering operand %d: %w", i+1, err)
		}
	}

	var sql strings.Builder

	// Trailing ORDER BY/LIMIT apply to the whole result, so the compound
	// body is wrapped in a subquery rather than binding to the last operand.
	if len(cq.Ordering) > 0 || cq.Limit != nil {
		sql.WriteString("SELECT * FROM (")
		sql.WriteString(body.String())
		sql.WriteString(")")

		if len(cq.Ordering) > 0 {
			sql.WriteString(" ORDER BY ")
			sql.WriteString(renderOrdering(cq.Ordering))
		}

		if err := renderLimit(cq.Limit, cq.Offset, &sql); err != nil {
			return nil, err
		}
	} else {
		if cq.Offset != nil {
			return nil, fmt.Errorf("OFFSET requires LIMIT")
		}
		sql.WriteString(body.String())
	}

	return &types.QueryResult{
		SQL:            sql.String(),
		RequiredParams: params,
	}, nil
}
