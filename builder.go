package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
)

// and creates an AND condition group (internal helper for builder).
func and(conditions ...types.ConditionItem) types.ConditionGroup {
	return types.ConditionGroup{
		Logic:      types.AND,
		Conditions: conditions,
	}
}

// c creates a simple condition (internal helper for builder).
func c(f types.Field, op types.Operator, p types.Param) types.Condition {
	return types.Condition{
		Field:    f,
		Operator: op,
		Value:    p,
	}
}

// Builder provides a fluent API for constructing queries.
type Builder struct {
	ast *types.AST
	err error
}

// GetAST returns the internal AST.
func (b *Builder) GetAST() *types.AST {
	return b.ast
}

// GetError returns the internal error (for use by dialect packages).
func (b *Builder) GetError() error {
	return b.err
}

// SetError sets the internal error (for use by dialect packages).
func (b *Builder) SetError(err error) {
	b.err = err
}

// Select creates a new SELECT query builder.
func Select(t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: types.OpSelect,
			Target:    t,
		},
	}
}

// Insert creates a new INSERT query builder.
func Insert(t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: types.OpInsert,
			Target:    t,
		},
	}
}

// Update creates a new UPDATE mutation builder.
func Update(t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: types.OpUpdate,
			Target:    t,
			Updates:   make(map[types.Field]types.Param),
		},
	}
}

// Delete creates a new DELETE mutation builder.
func Delete(t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: types.OpDelete,
			Target:    t,
		},
	}
}

// Count creates a new COUNT query builder.
func Count(t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: types.OpCount,
			Target:    t,
		},
	}
}

// Fields sets the fields to select.
func (b *Builder) Fields(fields ...types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("Fields() can only be used with SELECT queries")
		return b
	}
	b.ast.Fields = fields
	return b
}

// Expressions sets field expressions (aggregates, CASE, etc) to select.
func (b *Builder) Expressions(exprs ...types.FieldExpression) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("Expressions() can only be used with SELECT queries")
		return b
	}
	b.ast.FieldExpressions = exprs
	return b
}

// Where sets or adds conditions.
func (b *Builder) Where(condition types.ConditionItem) *Builder {
	if b.err != nil {
		return b
	}

	if b.ast.WhereClause == nil {
		b.ast.WhereClause = condition
	} else {
		// If there's already a where clause, combine with AND
		b.ast.WhereClause = and(b.ast.WhereClause, condition)
	}

	return b
}

// WhereField is a convenience method for simple field conditions.
func (b *Builder) WhereField(f types.Field, op types.Operator, p types.Param) *Builder {
	return b.Where(c(f, op, p))
}

// Prewhere sets or adds PREWHERE conditions. PREWHERE is a ClickHouse
// optimization that filters on a cheap column before reading the rest.
func (b *Builder) Prewhere(condition types.ConditionItem) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect && b.ast.Operation != types.OpCount {
		b.err = fmt.Errorf("PREWHERE can only be used with SELECT or COUNT queries")
		return b
	}

	if b.ast.Prewhere == nil {
		b.ast.Prewhere = condition
	} else {
		b.ast.Prewhere = and(b.ast.Prewhere, condition)
	}

	return b
}

// Set adds a field update for UPDATE mutations.
func (b *Builder) Set(f types.Field, p types.Param) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpUpdate {
		b.err = fmt.Errorf("Set() can only be used with UPDATE mutations")
		return b
	}
	if b.ast.Updates == nil {
		b.ast.Updates = make(map[types.Field]types.Param)
	}
	b.ast.Updates[f] = p
	return b
}

// Value adds a single field-value pair for INSERT queries.
// Multiple calls to Value() build up a single row to insert.
// Call NextRow() to finalize the current row and start a new one.
func (b *Builder) Value(f types.Field, p types.Param) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpInsert {
		b.err = fmt.Errorf("Value() can only be used with INSERT queries")
		return b
	}
	if b.ast.Values == nil {
		b.ast.Values = []map[types.Field]types.Param{}
	}
	// If there are no value sets yet, create the first one
	if len(b.ast.Values) == 0 {
		b.ast.Values = append(b.ast.Values, make(map[types.Field]types.Param))
	}
	// Add to the last value set
	lastIdx := len(b.ast.Values) - 1
	b.ast.Values[lastIdx][f] = p
	return b
}

// NextRow finalizes the current row and starts a new one for INSERT queries.
func (b *Builder) NextRow() *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpInsert {
		b.err = fmt.Errorf("NextRow() can only be used with INSERT queries")
		return b
	}
	if b.ast.Values == nil {
		b.ast.Values = []map[types.Field]types.Param{}
	}
	// Add a new empty map for the next row
	b.ast.Values = append(b.ast.Values, make(map[types.Field]types.Param))
	return b
}

// OrderBy adds ordering.
func (b *Builder) OrderBy(f types.Field, direction types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Ordering == nil {
		b.ast.Ordering = []types.OrderBy{}
	}
	b.ast.Ordering = append(b.ast.Ordering, types.OrderBy{
		Field:     f,
		Direction: direction,
	})
	return b
}

// Limit sets the limit.
func (b *Builder) Limit(limit int) *Builder {
	if b.err != nil {
		return b
	}
	b.ast.Limit = &limit
	return b
}

// Offset sets the offset.
func (b *Builder) Offset(offset int) *Builder {
	if b.err != nil {
		return b
	}
	b.ast.Offset = &offset
	return b
}

// LimitBy sets a LIMIT n BY fields clause, keeping the first n rows per
// distinct value of the given fields.
func (b *Builder) LimitBy(n int, fields ...types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("LIMIT BY can only be used with SELECT queries")
		return b
	}
	b.ast.LimitBy = &types.LimitBy{N: n, Fields: fields}
	return b
}

// Sample sets a SAMPLE clause with the given fraction in (0, 1].
func (b *Builder) Sample(fraction float64) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect && b.ast.Operation != types.OpCount {
		b.err = fmt.Errorf("SAMPLE can only be used with SELECT or COUNT queries")
		return b
	}
	b.ast.Sample = &fraction
	return b
}

// Final sets the FINAL modifier, forcing full merge of data parts before
// the read so each row appears at most once.
func (b *Builder) Final() *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect && b.ast.Operation != types.OpCount {
		b.err = fmt.Errorf("FINAL can only be used with SELECT or COUNT queries")
		return b
	}
	b.ast.Final = true
	return b
}

// GroupBy adds GROUP BY fields.
func (b *Builder) GroupBy(fields ...types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("GROUP BY can only be used with SELECT queries")
		return b
	}
	b.ast.GroupBy = append(b.ast.GroupBy, fields...)
	return b
}

// Having adds a HAVING condition. Multiple conditions combine with AND.
func (b *Builder) Having(cond types.Condition) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("HAVING can only be used with SELECT queries")
		return b
	}
	b.ast.Having = append(b.ast.Having, cond)
	return b
}

// HavingAgg adds a HAVING condition on an aggregate, such as count() > @min.
func (b *Builder) HavingAgg(cond types.AggregateCondition) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("HAVING can only be used with SELECT queries")
		return b
	}
	b.ast.Having = append(b.ast.Having, cond)
	return b
}

// Distinct sets the DISTINCT flag for SELECT queries.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("DISTINCT can only be used with SELECT queries")
		return b
	}
	b.ast.Distinct = true
	return b
}

// Join adds an INNER JOIN.
func (b *Builder) Join(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.InnerJoin, table, on)
}

// InnerJoin adds an INNER JOIN.
func (b *Builder) InnerJoin(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.InnerJoin, table, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.LeftJoin, table, on)
}

// CrossJoin adds a CROSS JOIN (no ON clause needed).
func (b *Builder) CrossJoin(table types.Table) *Builder {
	return b.addJoin(types.CrossJoin, table, nil)
}

// addJoin is a helper to add joins.
func (b *Builder) addJoin(joinType types.JoinType, table types.Table, on types.ConditionItem) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect && b.ast.Operation != types.OpCount {
		b.err = fmt.Errorf("JOIN can only be used with SELECT or COUNT queries")
		return b
	}
	if joinType == types.CrossJoin && on != nil {
		b.err = fmt.Errorf("CROSS JOIN cannot have ON clause")
		return b
	}
	if joinType != types.CrossJoin && on == nil {
		b.err = fmt.Errorf("%s requires ON clause", joinType)
		return b
	}

	b.ast.Joins = append(b.ast.Joins, types.Join{
		Type:  joinType,
		Table: table,
		On:    on,
	})
	return b
}

// Build returns the constructed AST or an error.
func (b *Builder) Build() (*types.AST, error) {
	if b.err != nil {
		return nil, b.err
	}

	// Validate the AST
	if err := b.ast.Validate(); err != nil {
		return nil, err
	}

	return b.ast, nil
}

// MustBuild returns the AST or panics on error.
func (b *Builder) MustBuild() *types.AST {
	ast, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ast
}

// Render builds the AST and renders it with the given dialect renderer.
func (b *Builder) Render(r Renderer) (*QueryResult, error) {
	ast, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Render(ast)
}

// MustRender builds and renders the AST or panics on error.
func (b *Builder) MustRender(r Renderer) *QueryResult {
	result, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
