package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
)

// Helper functions for creating field expressions.

// Sum creates a SUM aggregate expression.
func Sum(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggSum,
	}
}

// Avg creates an AVG aggregate expression.
func Avg(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggAvg,
	}
}

// Min creates a MIN aggregate expression.
func Min(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggMin,
	}
}

// Max creates a MAX aggregate expression.
func Max(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggMax,
	}
}

// CountField creates a COUNT aggregate expression for a specific field.
func CountField(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggCountField,
	}
}

// CountDistinct creates a COUNT(DISTINCT) aggregate expression.
func CountDistinct(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Field:     field,
		Aggregate: types.AggCountDistinct,
	}
}

// As sets an alias on a field expression.
func As(expr types.FieldExpression, alias string) types.FieldExpression {
	if !isValidSQLIdentifier(alias) {
		panic(fmt.Errorf("invalid alias: %s", alias))
	}
	expr.Alias = alias
	return expr
}

// CF creates a field comparison condition.
func CF(left types.Field, op types.Operator, right types.Field) types.FieldComparison {
	return types.FieldComparison{
		LeftField:  left,
		Operator:   op,
		RightField: right,
	}
}

// CSub creates a subquery condition with a field.
func CSub(field types.Field, op types.Operator, subquery types.Subquery) types.SubqueryCondition {
	// Validate operator is appropriate for subqueries
	switch op {
	case types.IN, types.NotIn, types.GlobalIn:
		// Valid operators that require a field
	default:
		panic(fmt.Errorf("operator %s cannot be used with CSub - use CSubExists for EXISTS/NOT EXISTS", op))
	}

	return types.SubqueryCondition{
		Field:    &field,
		Operator: op,
		Subquery: subquery,
	}
}

// CSubExists creates an EXISTS/NOT EXISTS subquery condition.
func CSubExists(op types.Operator, subquery types.Subquery) types.SubqueryCondition {
	// Validate operator
	switch op {
	case types.EXISTS, types.NotExists:
		// Valid operators
	default:
		panic(fmt.Errorf("CSubExists only accepts EXISTS or NOT EXISTS, got %s", op))
	}

	return types.SubqueryCondition{
		Field:    nil,
		Operator: op,
		Subquery: subquery,
	}
}

// Sub creates a subquery from a builder.
func Sub(builder *Builder) types.Subquery {
	ast, err := builder.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build subquery: %w", err))
	}
	return types.Subquery{AST: ast}
}

// Case creates a new CASE expression builder.
func Case() *CaseBuilder {
	return &CaseBuilder{
		expr: &types.CaseExpression{},
	}
}

// CaseBuilder provides fluent API for building CASE expressions.
type CaseBuilder struct {
	expr *types.CaseExpression
}

// When adds a WHEN...THEN clause.
func (cb *CaseBuilder) When(condition types.ConditionItem, result types.Param) *CaseBuilder {
	cb.expr.WhenClauses = append(cb.expr.WhenClauses, types.WhenClause{
		Condition: condition,
		Result:    result,
	})
	return cb
}

// Else sets the ELSE clause.
func (cb *CaseBuilder) Else(result types.Param) *CaseBuilder {
	cb.expr.ElseValue = &result
	return cb
}

// As sets the alias and returns the field expression.
func (cb *CaseBuilder) As(alias string) types.FieldExpression {
	if !isValidSQLIdentifier(alias) {
		panic(fmt.Errorf("invalid alias: %s", alias))
	}
	cb.expr.Alias = alias
	return types.FieldExpression{Case: cb.expr}
}

// End returns the field expression without an alias.
func (cb *CaseBuilder) End() types.FieldExpression {
	return types.FieldExpression{Case: cb.expr}
}

// Coalesce creates a COALESCE expression over parameters.
func Coalesce(values ...types.Param) types.FieldExpression {
	if len(values) < 2 {
		panic(fmt.Errorf("COALESCE requires at least two values"))
	}
	return types.FieldExpression{
		Coalesce: &types.CoalesceExpression{Values: values},
	}
}

// NullIf creates a NULLIF expression.
func NullIf(value1, value2 types.Param) types.FieldExpression {
	return types.FieldExpression{
		NullIf: &types.NullIfExpression{Value1: value1, Value2: value2},
	}
}

// Round creates a ROUND math expression. Precision is optional.
func Round(field types.Field, precision ...types.Param) types.FieldExpression {
	expr := &types.MathExpression{Function: types.MathRound, Field: field}
	if len(precision) > 0 {
		expr.Precision = &precision[0]
	}
	return types.FieldExpression{Math: expr}
}

// Floor creates a FLOOR math expression.
func Floor(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Math: &types.MathExpression{Function: types.MathFloor, Field: field},
	}
}

// Ceil creates a CEIL math expression.
func Ceil(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Math: &types.MathExpression{Function: types.MathCeil, Field: field},
	}
}

// Abs creates an ABS math expression.
func Abs(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Math: &types.MathExpression{Function: types.MathAbs, Field: field},
	}
}

// Power creates a POWER math expression.
func Power(field types.Field, exponent types.Param) types.FieldExpression {
	return types.FieldExpression{
		Math: &types.MathExpression{Function: types.MathPower, Field: field, Exponent: &exponent},
	}
}

// Sqrt creates a SQRT math expression.
func Sqrt(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Math: &types.MathExpression{Function: types.MathSqrt, Field: field},
	}
}

// HavingCount creates a HAVING condition on the bare row count,
// such as count() > @min.
func HavingCount(op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggCountField, Operator: op, Value: value}
}

// HavingCountField creates a HAVING condition on COUNT(field).
func HavingCountField(field types.Field, op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggCountField, Field: &field, Operator: op, Value: value}
}

// HavingSum creates a HAVING condition on SUM(field).
func HavingSum(field types.Field, op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggSum, Field: &field, Operator: op, Value: value}
}

// HavingAvg creates a HAVING condition on AVG(field).
func HavingAvg(field types.Field, op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggAvg, Field: &field, Operator: op, Value: value}
}

// HavingMin creates a HAVING condition on MIN(field).
func HavingMin(field types.Field, op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggMin, Field: &field, Operator: op, Value: value}
}

// HavingMax creates a HAVING condition on MAX(field).
func HavingMax(field types.Field, op types.Operator, value types.Param) types.AggregateCondition {
	return types.AggregateCondition{Func: types.AggMax, Field: &field, Operator: op, Value: value}
}

// Upper creates an upper() string expression.
func Upper(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{Function: types.StringUpper, Field: field},
	}
}

// Lower creates a lower() string expression.
func Lower(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{Function: types.StringLower, Field: field},
	}
}

// Trim creates a string expression trimming whitespace from both ends.
func Trim(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{Function: types.StringTrim, Field: field},
	}
}

// Length creates a string length expression.
func Length(field types.Field) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{Function: types.StringLength, Field: field},
	}
}

// Substring creates a substring expression with offset and length parameters.
func Substring(field types.Field, offset, length types.Param) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{
			Function: types.StringSubstring,
			Field:    field,
			Args:     []types.Param{offset, length},
		},
	}
}

// Replace creates a string replacement expression. Search and replacement
// are bound as parameters.
func Replace(field types.Field, search, replacement types.Param) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{
			Function: types.StringReplace,
			Field:    field,
			Args:     []types.Param{search, replacement},
		},
	}
}

// Concat creates a concatenation expression over one or more fields.
func Concat(first types.Field, rest ...types.Field) types.FieldExpression {
	return types.FieldExpression{
		String: &types.StringExpression{
			Function: types.StringConcat,
			Field:    first,
			Fields:   rest,
		},
	}
}

// Now creates a now() date expression.
func Now() types.FieldExpression {
	return types.FieldExpression{
		Date: &types.DateExpression{Function: types.DateNow},
	}
}

// Today creates a today() date expression.
func Today() types.FieldExpression {
	return types.FieldExpression{
		Date: &types.DateExpression{Function: types.DateToday},
	}
}

// Extract creates an EXTRACT expression pulling a component from a date field.
func Extract(part types.DatePart, field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Date: &types.DateExpression{Function: types.DateExtract, Part: part, Field: &field},
	}
}

// DateTrunc creates a date_trunc expression truncating a date field to a part.
func DateTrunc(part types.DatePart, field types.Field) types.FieldExpression {
	return types.FieldExpression{
		Date: &types.DateExpression{Function: types.DateTrunc, Part: part, Field: &field},
	}
}

// RowNumber creates a row_number() window function.
func RowNumber() types.WindowExpression {
	return types.WindowExpression{Function: types.WinRowNumber}
}

// Rank creates a rank() window function.
func Rank() types.WindowExpression {
	return types.WindowExpression{Function: types.WinRank}
}

// DenseRank creates a dense_rank() window function.
func DenseRank() types.WindowExpression {
	return types.WindowExpression{Function: types.WinDenseRank}
}

// Ntile creates an ntile() window function with a bucket count parameter.
func Ntile(buckets types.Param) types.WindowExpression {
	return types.WindowExpression{Function: types.WinNtile, NtileParam: &buckets}
}

// Lag creates a window function reading an earlier row in the frame.
// Optional params are the offset and the default value, in that order.
func Lag(field types.Field, params ...types.Param) types.WindowExpression {
	return lagLead(types.WinLag, field, params)
}

// Lead creates a window function reading a later row in the frame.
// Optional params are the offset and the default value, in that order.
func Lead(field types.Field, params ...types.Param) types.WindowExpression {
	return lagLead(types.WinLead, field, params)
}

func lagLead(fn types.WindowFunc, field types.Field, params []types.Param) types.WindowExpression {
	expr := types.WindowExpression{Function: fn, Field: &field}
	if len(params) > 0 {
		expr.LagOffset = &params[0]
	}
	if len(params) > 1 {
		expr.LagDefault = &params[1]
	}
	return expr
}

// FirstValue creates a first_value() window function.
func FirstValue(field types.Field) types.WindowExpression {
	return types.WindowExpression{Function: types.WinFirstValue, Field: &field}
}

// LastValue creates a last_value() window function.
func LastValue(field types.Field) types.WindowExpression {
	return types.WindowExpression{Function: types.WinLastValue, Field: &field}
}

// WindowAgg creates an aggregate-over window function, such as SUM(x) OVER.
func WindowAgg(fn types.AggregateFunc, field types.Field) types.WindowExpression {
	return types.WindowExpression{Aggregate: fn, Field: &field}
}

// Over attaches a window specification to a window function.
func Over(expr types.WindowExpression, spec types.WindowSpec) types.FieldExpression {
	expr.Window = spec
	return types.FieldExpression{Window: &expr}
}
