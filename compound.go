package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
)

// CompoundBuilder provides a fluent API for set operations over SELECTs.
type CompoundBuilder struct {
	query *types.CompoundQuery
	err   error
}

// compound starts a compound query from two builders.
func compound(op types.SetOperation, first, second *Builder) *CompoundBuilder {
	cb := &CompoundBuilder{query: &types.CompoundQuery{}}

	firstAST, err := first.Build()
	if err != nil {
		cb.err = fmt.Errorf("first operand: %w", err)
		return cb
	}
	secondAST, err := second.Build()
	if err != nil {
		cb.err = fmt.Errorf("second operand: %w", err)
		return cb
	}

	cb.query.First = firstAST
	cb.query.Rest = []types.SetOperand{{Op: op, AST: secondAST}}
	return cb
}

// Union creates a UNION DISTINCT of two queries.
func Union(first, second *Builder) *CompoundBuilder {
	return compound(types.SetUnion, first, second)
}

// UnionAll creates a UNION ALL of two queries.
func UnionAll(first, second *Builder) *CompoundBuilder {
	return compound(types.SetUnionAll, first, second)
}

// Intersect creates an INTERSECT of two queries.
func Intersect(first, second *Builder) *CompoundBuilder {
	return compound(types.SetIntersect, first, second)
}

// Except creates an EXCEPT of two queries.
func Except(first, second *Builder) *CompoundBuilder {
	return compound(types.SetExcept, first, second)
}

// Union adds another UNION DISTINCT operand.
func (cb *CompoundBuilder) Union(b *Builder) *CompoundBuilder {
	return cb.add(types.SetUnion, b)
}

// UnionAll adds another UNION ALL operand.
func (cb *CompoundBuilder) UnionAll(b *Builder) *CompoundBuilder {
	return cb.add(types.SetUnionAll, b)
}

// Intersect adds another INTERSECT operand.
func (cb *CompoundBuilder) Intersect(b *Builder) *CompoundBuilder {
	return cb.add(types.SetIntersect, b)
}

// Except adds another EXCEPT operand.
func (cb *CompoundBuilder) Except(b *Builder) *CompoundBuilder {
	return cb.add(types.SetExcept, b)
}

func (cb *CompoundBuilder) add(op types.SetOperation, b *Builder) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	ast, err := b.Build()
	if err != nil {
		cb.err = fmt.Errorf("operand %d: %w", len(cb.query.Rest)+1, err)
		return cb
	}
	cb.query.Rest = append(cb.query.Rest, types.SetOperand{Op: op, AST: ast})
	return cb
}

// OrderBy adds ordering over the combined result.
func (cb *CompoundBuilder) OrderBy(f types.Field, direction types.Direction) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	cb.query.Ordering = append(cb.query.Ordering, types.OrderBy{
		Field:     f,
		Direction: direction,
	})
	return cb
}

// Limit sets the limit over the combined result.
func (cb *CompoundBuilder) Limit(limit int) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	cb.query.Limit = &limit
	return cb
}

// Offset sets the offset over the combined result.
func (cb *CompoundBuilder) Offset(offset int) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	cb.query.Offset = &offset
	return cb
}

// Build returns the constructed compound query or an error.
func (cb *CompoundBuilder) Build() (*types.CompoundQuery, error) {
	if cb.err != nil {
		return nil, cb.err
	}
	if err := cb.query.Validate(); err != nil {
		return nil, err
	}
	return cb.query, nil
}

// Render builds the compound query and renders it with the given dialect.
func (cb *CompoundBuilder) Render(r Renderer) (*QueryResult, error) {
	query, err := cb.Build()
	if err != nil {
		return nil, err
	}
	return r.RenderCompound(query)
}
