// Package clickhouse provides the ClickHouse dialect renderer for clickql.
package clickhouse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/clickql/internal/render"
	"github.com/zoobzio/clickql/internal/types"
)

// dialectName is the alias this renderer registers under.
const dialectName = "clickhouse"

// countSQL is the SQL for the bare row-count aggregate.
const countSQL = "count()"

func init() {
	clickql.RegisterDialect(dialectName, func() clickql.Renderer { return New() })
}

// renderContext tracks rendering state for parameter namespacing and depth limiting.
type renderContext struct {
	usedParams    map[string]bool
	paramCallback func(types.Param) string
	paramPrefix   string
	depth         int
}

// newRenderContext creates a new render context.
func newRenderContext(paramCallback func(types.Param) string) *renderContext {
	return &renderContext{
		depth:         0,
		paramPrefix:   "",
		usedParams:    make(map[string]bool),
		paramCallback: paramCallback,
	}
}

// withSubquery creates a child context for rendering a subquery.
func (ctx *renderContext) withSubquery() (*renderContext, error) {
	if ctx.depth >= types.MaxSubqueryDepth {
		return nil, fmt.Errorf("maximum subquery depth (%d) exceeded", types.MaxSubqueryDepth)
	}

	return &renderContext{
		depth:         ctx.depth + 1,
		paramPrefix:   fmt.Sprintf("sq%d_", ctx.depth+1),
		usedParams:    ctx.usedParams, // Share the same map
		paramCallback: ctx.paramCallback,
	}, nil
}

// addParam adds a parameter with proper namespacing.
func (ctx *renderContext) addParam(param types.Param) string {
	if ctx.paramPrefix != "" {
		param = types.Param{Name: ctx.paramPrefix + param.Name}
	}
	return ctx.paramCallback(param)
}

// Renderer implements the ClickHouse dialect renderer.
type Renderer struct{}

// New creates a new ClickHouse renderer.
func New() *Renderer {
	return &Renderer{}
}

// Capabilities reports the SQL feature matrix of this dialect.
func (*Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		FinalModifier:       true,
		SampleClause:        true,
		PrewhereClause:      true,
		LimitBy:             true,
		Mutations:           true,
		Upsert:              false,
		Returning:           false,
		CaseInsensitiveLike: true,
		RowLocking:          false,
		SetOperations:       true,
	}
}

// Render converts an AST to a QueryResult with ClickHouse SQL.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	if err := ast.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}

	var sql strings.Builder
	var params []string
	usedParams := make(map[string]bool)

	// Helper to add a parameter and return its placeholder
	addParam := func(param types.Param) string {
		// Named parameters for the clickhouse-go driver
		placeholder := "@" + param.Name

		// Track unique parameter names
		if !usedParams[param.Name] {
			params = append(params, param.Name)
			usedParams[param.Name] = true
		}

		return placeholder
	}

	// Create render context for handling subqueries
	ctx := newRenderContext(addParam)

	// Render based on operation
	switch ast.Operation {
	case types.OpSelect:
		if err := r.renderSelect(ast, &sql, ctx); err != nil {
			return nil, err
		}
	case types.OpInsert:
		if err := r.renderInsert(ast, &sql, addParam); err != nil {
			return nil, err
		}
	case types.OpUpdate:
		if err := r.renderUpdate(ast, &sql, ctx); err != nil {
			return nil, err
		}
	case types.OpDelete:
		if err := r.renderDelete(ast, &sql, ctx); err != nil {
			return nil, err
		}
	case types.OpCount:
		if err := r.renderCount(ast, &sql, ctx); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported operation: %s", ast.Operation)
	}

	return &types.QueryResult{
		SQL:            sql.String(),
		RequiredParams: params,
	}, nil
}

func (r *Renderer) renderSelect(ast *types.AST, sql *strings.Builder, ctx *renderContext) error {
	sql.WriteString("SELECT ")

	if ast.Distinct {
		sql.WriteString("DISTINCT ")
	}

	// Render fields and expressions
	if len(ast.Fields) == 0 && len(ast.FieldExpressions) == 0 {
		sql.WriteString("*")
	} else {
		var selections []string

		// Regular fields
		for _, field := range ast.Fields {
			selections = append(selections, renderField(field))
		}

		// Field expressions (aggregates, CASE, etc)
		for _, expr := range ast.FieldExpressions {
			exprStr, err := r.renderFieldExpression(expr, ctx)
			if err != nil {
				return err
			}
			selections = append(selections, exprStr)
		}

		sql.WriteString(strings.Join(selections, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(renderTable(ast.Target))

	if err := r.renderTableModifiers(ast, sql); err != nil {
		return err
	}

	// Render JOINs
	if err := r.renderJoins(ast, sql, ctx); err != nil {
		return err
	}

	// PREWHERE clause
	if ast.Prewhere != nil {
		sql.WriteString(" PREWHERE ")
		if err := r.renderCondition(ast.Prewhere, sql, ctx); err != nil {
			return err
		}
	}

	// WHERE clause
	if ast.WhereClause != nil {
		sql.WriteString(" WHERE ")
		if err := r.renderCondition(ast.WhereClause, sql, ctx); err != nil {
			return err
		}
	}

	// GROUP BY
	if len(ast.GroupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		var groupFields []string
		for _, field := range ast.GroupBy {
			groupFields = append(groupFields, renderField(field))
		}
		sql.WriteString(strings.Join(groupFields, ", "))
	}

	// HAVING
	if len(ast.Having) > 0 {
		sql.WriteString(" HAVING ")
		for i, cond := range ast.Having {
			if i > 0 {
				sql.WriteString(" AND ")
			}
			if err := r.renderCondition(cond, sql, ctx); err != nil {
				return err
			}
		}
	}

	// ORDER BY
	if len(ast.Ordering) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(renderOrdering(ast.Ordering))
	}

	// LIMIT n BY fields
	if ast.LimitBy != nil {
		fmt.Fprintf(sql, " LIMIT %d BY ", ast.LimitBy.N)
		var limitByFields []string
		for _, field := range ast.LimitBy.Fields {
			limitByFields = append(limitByFields, renderField(field))
		}
		sql.WriteString(strings.Join(limitByFields, ", "))
	}

	// LIMIT / OFFSET
	return renderLimit(ast.Limit, ast.Offset, sql)
}

// renderTableModifiers renders FINAL and SAMPLE after the target table.
func (*Renderer) renderTableModifiers(ast *types.AST, sql *strings.Builder) error {
	if ast.Final {
		sql.WriteString(" FINAL")
	}
	if ast.Sample != nil {
		sql.WriteString(" SAMPLE ")
		sql.WriteString(strconv.FormatFloat(*ast.Sample, 'g', -1, 64))
	}
	return nil
}

func (r *Renderer) renderJoins(ast *types.AST, sql *strings.Builder, ctx *renderContext) error {
	for _, join := range ast.Joins {
		sql.WriteString(" ")
		sql.WriteString(string(join.Type))
		sql.WriteString(" ")
		sql.WriteString(renderTable(join.Table))
		// CROSS JOIN doesn't have ON clause
		if join.Type != types.CrossJoin {
			sql.WriteString(" ON ")
			if join.On == nil {
				// Predicate-free joins scan the full product
				sql.WriteString("1")
				continue
			}
			if err := r.renderCondition(join.On, sql, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) renderInsert(ast *types.AST, sql *strings.Builder, addParam func(types.Param) string) error {
	sql.WriteString("INSERT INTO ")
	sql.WriteString(renderTable(ast.Target))

	if len(ast.Values) == 0 {
		return fmt.Errorf("INSERT requires at least one value set")
	}

	// Extract field names from first value set
	fields := make([]string, 0, len(ast.Values[0]))
	fieldObjs := make([]types.Field, 0, len(ast.Values[0]))
	for field := range ast.Values[0] {
		fieldObjs = append(fieldObjs, field)
	}

	// Sort fields by name for deterministic output
	sort.Slice(fieldObjs, func(i, j int) bool {
		return fieldObjs[i].Name < fieldObjs[j].Name
	})

	for _, field := range fieldObjs {
		fields = append(fields, quoteIdentifier(field.Name))
	}

	sql.WriteString(" (")
	sql.WriteString(strings.Join(fields, ", "))
	sql.WriteString(") VALUES ")

	// Render value sets
	valueSets := make([]string, 0, len(ast.Values))
	for _, valueSet := range ast.Values {
		var values []string
		for _, field := range fieldObjs {
			param := valueSet[field]
			values = append(values, addParam(param))
		}
		valueSets = append(valueSets, "("+strings.Join(values, ", ")+")")
	}
	sql.WriteString(strings.Join(valueSets, ", "))

	return nil
}

// renderUpdate renders an UPDATE as a ClickHouse mutation:
// ALTER TABLE t UPDATE col = val, ... WHERE cond.
func (r *Renderer) renderUpdate(ast *types.AST, sql *strings.Builder, ctx *renderContext) error {
	sql.WriteString("ALTER TABLE ")
	sql.WriteString(quoteIdentifier(ast.Target.Name))
	sql.WriteString(" UPDATE ")

	// First collect all fields to sort them
	updateFields := make([]types.Field, 0, len(ast.Updates))
	for field := range ast.Updates {
		updateFields = append(updateFields, field)
	}

	// Sort fields by name for deterministic output
	sort.Slice(updateFields, func(i, j int) bool {
		return updateFields[i].Name < updateFields[j].Name
	})

	// Build update clauses in sorted order
	updates := make([]string, 0, len(ast.Updates))
	for _, field := range updateFields {
		param := ast.Updates[field]
		updates = append(updates, fmt.Sprintf("%s = %s", quoteIdentifier(field.Name), ctx.addParam(param)))
	}
	sql.WriteString(strings.Join(updates, ", "))

	// Mutations require WHERE; Validate enforces its presence
	sql.WriteString(" WHERE ")
	return r.renderCondition(ast.WhereClause, sql, ctx)
}

// renderDelete renders a DELETE as a ClickHouse mutation:
// ALTER TABLE t DELETE WHERE cond.
func (r *Renderer) renderDelete(ast *types.AST, sql *strings.Builder, ctx *renderContext) error {
	sql.WriteString("ALTER TABLE ")
	sql.WriteString(quoteIdentifier(ast.Target.Name))
	sql.WriteString(" DELETE WHERE ")
	return r.renderCondition(ast.WhereClause, sql, ctx)
}

func (r *Renderer) renderCount(ast *types.AST, sql *strings.Builder, ctx *renderContext) error {
	sql.WriteString("SELECT " + countSQL + " FROM ")
	sql.WriteString(renderTable(ast.Target))

	if err := r.renderTableModifiers(ast, sql); err != nil {
		return err
	}

	// Render JOINs (COUNT can have JOINs)
	if err := r.renderJoins(ast, sql, ctx); err != nil {
		return err
	}

	// PREWHERE clause
	if ast.Prewhere != nil {
		sql.WriteString(" PREWHERE ")
		if err := r.renderCondition(ast.Prewhere, sql, ctx); err != nil {
			return err
		}
	}

	// WHERE clause
	if ast.WhereClause != nil {
		sql.WriteString(" WHERE ")
		if err := r.renderCondition(ast.WhereClause, sql, ctx); err != nil {
			return err
		}
	}

	return nil
}

// renderLimit renders LIMIT/OFFSET in ClickHouse's comma form.
func renderLimit(limit, offset *int, sql *strings.Builder) error {
	if limit == nil {
		if offset != nil {
			return fmt.Errorf("OFFSET requires LIMIT")
		}
		return nil
	}
	if offset != nil && *offset != 0 {
		fmt.Fprintf(sql, " LIMIT %d, %d", *offset, *limit)
		return nil
	}
	fmt.Fprintf(sql, " LIMIT %d", *limit)
	return nil
}

// renderOrdering renders an ORDER BY clause body.
func renderOrdering(ordering []types.OrderBy) string {
	var orderParts []string
	for _, order := range ordering {
		orderParts = append(orderParts, fmt.Sprintf("%s %s", renderField(order.Field), order.Direction))
	}
	return strings.Join(orderParts, ", ")
}

// quoteIdentifier quotes a ClickHouse identifier to handle reserved words
// and special characters. Existing backticks are escaped by doubling.
func quoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + escaped + "`"
}

func renderTable(table types.Table) string {
	quotedName := quoteIdentifier(table.Name)
	if table.Alias != "" {
		// Aliases don't need quoting since they're restricted to single lowercase letters
		return fmt.Sprintf("%s %s", quotedName, table.Alias)
	}
	return quotedName
}

func renderField(field types.Field) string {
	quotedName := quoteIdentifier(field.Name)
	if field.Table != "" {
		// Table aliases don't need quoting (single lowercase letter)
		return fmt.Sprintf("%s.%s", field.Table, quotedName)
	}
	return quotedName
}

func renderAggregateExpression(aggregate types.AggregateFunc, field types.Field) string {
	switch aggregate {
	case types.AggCountField:
		return fmt.Sprintf("COUNT(%s)", renderField(field))
	case types.AggCountDistinct:
		return fmt.Sprintf("COUNT(DISTINCT %s)", renderField(field))
	case types.AggSum:
		return fmt.Sprintf("SUM(%s)", renderField(field))
	case types.AggAvg:
		return fmt.Sprintf("AVG(%s)", renderField(field))
	case types.AggMin:
		return fmt.Sprintf("MIN(%s)", renderField(field))
	case types.AggMax:
		return fmt.Sprintf("MAX(%s)", renderField(field))
	default:
		return renderField(field) // Fallback
	}
}

func (r *Renderer) renderFieldExpression(expr types.FieldExpression, ctx *renderContext) (string, error) {
	var result string

	switch {
	case expr.Case != nil:
		caseStr, err := r.renderCaseExpression(*expr.Case, ctx)
		if err != nil {
			return "", err
		}
		result = caseStr
	case expr.Coalesce != nil:
		result = r.renderCoalesceExpression(*expr.Coalesce, ctx)
	case expr.NullIf != nil:
		result = r.renderNullIfExpression(*expr.NullIf, ctx)
	case expr.Math != nil:
		mathStr, err := r.renderMathExpression(*expr.Math, ctx)
		if err != nil {
			return "", err
		}
		result = mathStr
	case expr.String != nil:
		strStr, err := renderStringExpression(*expr.String, ctx)
		if err != nil {
			return "", err
		}
		result = strStr
	case expr.Date != nil:
		dateStr, err := renderDateExpression(*expr.Date)
		if err != nil {
			return "", err
		}
		result = dateStr
	case expr.Window != nil:
		windowStr, err := renderWindowExpression(*expr.Window, ctx)
		if err != nil {
			return "", err
		}
		result = windowStr
	case expr.Aggregate != "":
		result = renderAggregateExpression(expr.Aggregate, expr.Field)
	default:
		result = renderField(expr.Field)
	}

	if expr.Alias != "" {
		result += " AS " + quoteIdentifier(expr.Alias)
	}

	return result, nil
}

func (r *Renderer) renderCondition(cond types.ConditionItem, sql *strings.Builder, ctx *renderContext) error {
	switch cnd := cond.(type) {
	case types.Condition:
		sql.WriteString(renderSimpleCondition(cnd, ctx.addParam))
	case types.ConditionGroup:
		if len(cnd.Conditions) == 0 {
			return fmt.Errorf("empty condition group")
		}
		sql.WriteString("(")
		for i, subCond := range cnd.Conditions {
			if i > 0 {
				fmt.Fprintf(sql, " %s ", cnd.Logic)
			}
			if err := r.renderCondition(subCond, sql, ctx); err != nil {
				return err
			}
		}
		sql.WriteString(")")
	case types.FieldComparison:
		fmt.Fprintf(sql, "%s %s %s",
			renderField(cnd.LeftField),
			renderOperator(cnd.Operator),
			renderField(cnd.RightField))
	case types.SubqueryCondition:
		if err := r.renderSubqueryCondition(cnd, sql, ctx); err != nil {
			return err
		}
	case types.BetweenCondition:
		sql.WriteString(renderBetweenCondition(cnd, ctx.addParam))
	case types.AggregateCondition:
		sql.WriteString(renderAggregateCondition(cnd, ctx.addParam))
	default:
		return fmt.Errorf("unknown condition type: %T", cnd)
	}
	return nil
}

func renderBetweenCondition(cond types.BetweenCondition, addParam func(types.Param) string) string {
	op := "BETWEEN"
	if cond.Negated {
		op = "NOT BETWEEN"
	}
	return fmt.Sprintf("%s %s %s AND %s",
		renderField(cond.Field), op, addParam(cond.Low), addParam(cond.High))
}

// Examples: count() > @min_count, SUM(`total`) >= @threshold.
func renderAggregateCondition(cond types.AggregateCondition, addParam func(types.Param) string) string {
	var aggExpr string
	if cond.Field == nil {
		aggExpr = countSQL
	} else {
		aggExpr = renderAggregateExpression(cond.Func, *cond.Field)
	}
	return fmt.Sprintf("%s %s %s", aggExpr, renderOperator(cond.Operator), addParam(cond.Value))
}

func renderSimpleCondition(cond types.Condition, addParam func(types.Param) string) string {
	field := renderField(cond.Field)
	op := renderOperator(cond.Operator)

	switch cond.Operator {
	case types.IsNull:
		return fmt.Sprintf("%s IS NULL", field)
	case types.IsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", field)
	case types.IN, types.NotIn, types.GlobalIn:
		// The driver expands slice-valued named params inside parentheses
		return fmt.Sprintf("%s %s (%s)", field, op, addParam(cond.Value))
	default:
		return fmt.Sprintf("%s %s %s", field, op, addParam(cond.Value))
	}
}

func (r *Renderer) renderSubqueryCondition(cond types.SubqueryCondition, sql *strings.Builder, ctx *renderContext) error {
	switch cond.Operator {
	case types.EXISTS, types.NotExists:
		// EXISTS/NOT EXISTS don't need a field
		sql.WriteString(string(cond.Operator))
		sql.WriteString(" ")
	default:
		// IN/NOT IN/GLOBAL IN need a field
		if cond.Field == nil {
			return fmt.Errorf("operator %s requires a field", cond.Operator)
		}
		sql.WriteString(renderField(*cond.Field))
		sql.WriteString(" ")
		sql.WriteString(string(cond.Operator))
		sql.WriteString(" ")
	}

	// Render the subquery
	sql.WriteString("(")
	if err := r.renderSubquery(cond.Subquery, sql, ctx); err != nil {
		return err
	}
	sql.WriteString(")")

	return nil
}

func (r *Renderer) renderSubquery(subquery types.Subquery, sql *strings.Builder, ctx *renderContext) error {
	// Create a new context for the subquery
	subCtx, err := ctx.withSubquery()
	if err != nil {
		return err
	}

	return r.renderSelect(subquery.AST, sql, subCtx)
}

func (r *Renderer) renderCaseExpression(expr types.CaseExpression, ctx *renderContext) (string, error) {
	var sql strings.Builder
	sql.WriteString("CASE")

	for _, when := range expr.WhenClauses {
		sql.WriteString(" WHEN ")
		if err := r.renderCondition(when.Condition, &sql, ctx); err != nil {
			return "", err
		}
		sql.WriteString(" THEN ")
		sql.WriteString(ctx.addParam(when.Result))
	}

	if expr.ElseValue != nil {
		sql.WriteString(" ELSE ")
		sql.WriteString(ctx.addParam(*expr.ElseValue))
	}

	sql.WriteString(" END")
	return sql.String(), nil
}

func (*Renderer) renderCoalesceExpression(expr types.CoalesceExpression, ctx *renderContext) string {
	params := make([]string, 0, len(expr.Values))
	for _, value := range expr.Values {
		params = append(params, ctx.addParam(value))
	}
	return "COALESCE(" + strings.Join(params, ", ") + ")"
}

func (*Renderer) renderNullIfExpression(expr types.NullIfExpression, ctx *renderContext) string {
	return "NULLIF(" + ctx.addParam(expr.Value1) + ", " + ctx.addParam(expr.Value2) + ")"
}

func (*Renderer) renderMathExpression(expr types.MathExpression, ctx *renderContext) (string, error) {
	var sql strings.Builder

	switch expr.Function {
	case types.MathRound:
		sql.WriteString("ROUND(")
		sql.WriteString(renderField(expr.Field))
		if expr.Precision != nil {
			sql.WriteString(", ")
			sql.WriteString(ctx.addParam(*expr.Precision))
		}
		sql.WriteString(")")
	case types.MathFloor:
		sql.WriteString("FLOOR(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.MathCeil:
		sql.WriteString("CEIL(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.MathAbs:
		sql.WriteString("ABS(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.MathPower:
		sql.WriteString("POWER(")
		sql.WriteString(renderField(expr.Field))
		if expr.Exponent != nil {
			sql.WriteString(", ")
			sql.WriteString(ctx.addParam(*expr.Exponent))
		} else {
			return "", fmt.Errorf("POWER requires an exponent parameter")
		}
		sql.WriteString(")")
	case types.MathSqrt:
		sql.WriteString("SQRT(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	default:
		return "", fmt.Errorf("unsupported math function: %s", expr.Function)
	}

	return sql.String(), nil
}

func renderStringExpression(expr types.StringExpression, ctx *renderContext) (string, error) {
	var sql strings.Builder

	switch expr.Function {
	case types.StringUpper:
		sql.WriteString("upper(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringLower:
		sql.WriteString("lower(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringTrim:
		sql.WriteString("trimBoth(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringLTrim:
		sql.WriteString("trimLeft(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringRTrim:
		sql.WriteString("trimRight(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringLength:
		sql.WriteString("length(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(")")
	case types.StringSubstring:
		if len(expr.Args) < 2 {
			return "", fmt.Errorf("SUBSTRING requires offset and length parameters")
		}
		sql.WriteString("substring(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(", ")
		sql.WriteString(ctx.addParam(expr.Args[0]))
		sql.WriteString(", ")
		sql.WriteString(ctx.addParam(expr.Args[1]))
		sql.WriteString(")")
	case types.StringReplace:
		if len(expr.Args) < 2 {
			return "", fmt.Errorf("REPLACE requires search and replacement parameters")
		}
		sql.WriteString("replaceAll(")
		sql.WriteString(renderField(expr.Field))
		sql.WriteString(", ")
		sql.WriteString(ctx.addParam(expr.Args[0]))
		sql.WriteString(", ")
		sql.WriteString(ctx.addParam(expr.Args[1]))
		sql.WriteString(")")
	case types.StringConcat:
		sql.WriteString("concat(")
		sql.WriteString(renderField(expr.Field))
		for _, f := range expr.Fields {
			sql.WriteString(", ")
			sql.WriteString(renderField(f))
		}
		sql.WriteString(")")
	default:
		return "", fmt.Errorf("unsupported string function: %s", expr.Function)
	}

	return sql.String(), nil
}

func renderDateExpression(expr types.DateExpression) (string, error) {
	switch expr.Function {
	case types.DateNow:
		return "now()", nil
	case types.DateToday:
		return "today()", nil
	case types.DateExtract:
		if expr.Field == nil {
			return "", fmt.Errorf("EXTRACT requires a field")
		}
		return fmt.Sprintf("EXTRACT(%s FROM %s)", expr.Part, renderField(*expr.Field)), nil
	case types.DateTrunc:
		if expr.Field == nil {
			return "", fmt.Errorf("date_trunc requires a field")
		}
		return fmt.Sprintf("date_trunc('%s', %s)",
			strings.ToLower(string(expr.Part)), renderField(*expr.Field)), nil
	default:
		return "", fmt.Errorf("unsupported date function: %s", expr.Function)
	}
}

func renderWindowExpression(expr types.WindowExpression, ctx *renderContext) (string, error) {
	var sql strings.Builder

	switch expr.Function {
	case types.WinRowNumber:
		sql.WriteString("row_number()")
	case types.WinRank:
		sql.WriteString("rank()")
	case types.WinDenseRank:
		sql.WriteString("dense_rank()")
	case types.WinNtile:
		if expr.NtileParam == nil {
			return "", fmt.Errorf("ntile requires a bucket count parameter")
		}
		sql.WriteString("ntile(")
		sql.WriteString(ctx.addParam(*expr.NtileParam))
		sql.WriteString(")")
	case types.WinLag, types.WinLead:
		// ClickHouse has no LAG/LEAD; lagInFrame/leadInFrame read
		// within the window frame instead
		if expr.Field == nil {
			return "", fmt.Errorf("%s requires a field", expr.Function)
		}
		if expr.Function == types.WinLag {
			sql.WriteString("lagInFrame(")
		} else {
			sql.WriteString("leadInFrame(")
		}
		sql.WriteString(renderField(*expr.Field))
		if expr.LagOffset != nil {
			sql.WriteString(", ")
			sql.WriteString(ctx.addParam(*expr.LagOffset))
		}
		if expr.LagDefault != nil {
			sql.WriteString(", ")
			sql.WriteString(ctx.addParam(*expr.LagDefault))
		}
		sql.WriteString(")")
	case types.WinFirstValue:
		if expr.Field == nil {
			return "", fmt.Errorf("first_value requires a field")
		}
		sql.WriteString("first_value(")
		sql.WriteString(renderField(*expr.Field))
		sql.WriteString(")")
	case types.WinLastValue:
		if expr.Field == nil {
			return "", fmt.Errorf("last_value requires a field")
		}
		sql.WriteString("last_value(")
		sql.WriteString(renderField(*expr.Field))
		sql.WriteString(")")
	default:
		// Aggregate-over form (SUM(x) OVER, count() OVER)
		if expr.Aggregate == "" {
			return "", fmt.Errorf("unknown window function: %s", expr.Function)
		}
		if expr.Field != nil {
			sql.WriteString(renderAggregateExpression(expr.Aggregate, *expr.Field))
		} else {
			sql.WriteString(countSQL)
		}
	}

	sql.WriteString(" OVER (")

	var overParts []string

	if len(expr.Window.PartitionBy) > 0 {
		var partitionFields []string
		for _, field := range expr.Window.PartitionBy {
			partitionFields = append(partitionFields, renderField(field))
		}
		overParts = append(overParts, "PARTITION BY "+strings.Join(partitionFields, ", "))
	}

	if len(expr.Window.OrderBy) > 0 {
		overParts = append(overParts, "ORDER BY "+renderOrdering(expr.Window.OrderBy))
	}

	if expr.Window.FrameStart != "" {
		framePart := "ROWS BETWEEN " + string(expr.Window.FrameStart) + " AND "
		if expr.Window.FrameEnd != "" {
			framePart += string(expr.Window.FrameEnd)
		} else {
			framePart += string(types.FrameCurrentRow)
		}
		overParts = append(overParts, framePart)
	}

	sql.WriteString(strings.Join(overParts, " "))
	sql.WriteString(")")

	return sql.String(), nil
}

func renderOperator(op types.Operator) string {
	switch op {
	case types.EQ:
		return "="
	case types.NE:
		return "!="
	case types.GT:
		return ">"
	case types.GE:
		return ">="
	case types.LT:
		return "<"
	case types.LE:
		return "<="
	case types.LIKE:
		return "LIKE"
	case types.NotLike:
		return "NOT LIKE"
	case types.ILIKE:
		return "ILIKE"
	case types.NotILike:
		return "NOT ILIKE"
	case types.IN:
		return "IN"
	case types.NotIn:
		return "NOT IN"
	case types.GlobalIn:
		return "GLOBAL IN"
	case types.EXISTS:
		return "EXISTS"
	case types.NotExists:
		return "NOT EXISTS"
	default:
		return string(op)
	}
}
