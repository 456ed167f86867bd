package types

import "fmt"

// Operation represents the type of query operation.
type Operation string

const (
	OpSelect Operation = "SELECT"
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
	OpCount  Operation = "COUNT"
)

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderBy represents an ORDER BY clause.
type OrderBy struct {
	Field     Field
	Direction Direction
}

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	CrossJoin JoinType = "CROSS JOIN"
)

// Join represents a SQL JOIN clause.
type Join struct {
	On    ConditionItem
	Table Table
	Type  JoinType
}

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc string

const (
	AggSum AggregateFunc = "SUM"
	AggAvg AggregateFunc = "AVG"
	AggMin AggregateFunc = "MIN"
	AggMax AggregateFunc = "MAX"
	// Note: COUNT is already an operation, but can also be an aggregate on fields.
	AggCountField    AggregateFunc = "COUNT"
	AggCountDistinct AggregateFunc = "COUNT_DISTINCT"
)

// FieldExpression represents a field with optional aggregate function or SQL expression.
type FieldExpression struct {
	Field     Field
	Aggregate AggregateFunc
	Case      *CaseExpression     // For CASE expressions in SELECT
	Coalesce  *CoalesceExpression // For COALESCE expressions
	NullIf    *NullIfExpression   // For NULLIF expressions
	Math      *MathExpression     // For math functions
	String    *StringExpression   // For string functions
	Date      *DateExpression     // For date functions
	Window    *WindowExpression   // For window functions
	Alias     string
}

// CaseExpression represents a SQL CASE expression.
type CaseExpression struct {
	ElseValue   *Param
	Alias       string
	WhenClauses []WhenClause
}

// WhenClause represents a single WHEN...THEN clause.
type WhenClause struct {
	Condition ConditionItem
	Result    Param
}

// CoalesceExpression represents a COALESCE function call.
type CoalesceExpression struct {
	Alias  string
	Values []Param
}

// NullIfExpression represents a NULLIF function call.
type NullIfExpression struct {
	Alias  string
	Value1 Param
	Value2 Param
}

// MathFunc represents SQL math functions.
type MathFunc string

const (
	MathRound MathFunc = "ROUND"
	MathFloor MathFunc = "FLOOR"
	MathCeil  MathFunc = "CEIL"
	MathAbs   MathFunc = "ABS"
	MathPower MathFunc = "POWER"
	MathSqrt  MathFunc = "SQRT"
)

// MathExpression represents a math function call.
type MathExpression struct {
	Function  MathFunc
	Field     Field
	Precision *Param // Optional, for ROUND
	Exponent  *Param // Optional, for POWER
	Alias     string
}

// StringFunc represents SQL string functions.
type StringFunc string

const (
	StringUpper     StringFunc = "UPPER"
	StringLower     StringFunc = "LOWER"
	StringTrim      StringFunc = "TRIM"
	StringLTrim     StringFunc = "LTRIM"
	StringRTrim     StringFunc = "RTRIM"
	StringLength    StringFunc = "LENGTH"
	StringSubstring StringFunc = "SUBSTRING"
	StringReplace   StringFunc = "REPLACE"
	StringConcat    StringFunc = "CONCAT"
)

// StringExpression represents a string function call.
type StringExpression struct {
	Function StringFunc
	Field    Field
	Args     []Param // SUBSTRING offset/length, REPLACE search/replacement
	Fields   []Field // additional CONCAT operands
}

// DateFunc represents SQL date/time functions.
type DateFunc string

const (
	DateNow     DateFunc = "NOW"
	DateToday   DateFunc = "TODAY"
	DateExtract DateFunc = "EXTRACT"
	DateTrunc   DateFunc = "DATE_TRUNC"
)

// DatePart represents the component extracted or truncated from a date.
type DatePart string

const (
	PartYear    DatePart = "YEAR"
	PartQuarter DatePart = "QUARTER"
	PartMonth   DatePart = "MONTH"
	PartDay     DatePart = "DAY"
	PartHour    DatePart = "HOUR"
	PartMinute  DatePart = "MINUTE"
	PartSecond  DatePart = "SECOND"
)

// DateExpression represents a date function call.
type DateExpression struct {
	Function DateFunc
	Part     DatePart
	Field    *Field // nil for NOW/TODAY
}

// WindowFunc represents window function types.
type WindowFunc string

const (
	WinRowNumber  WindowFunc = "ROW_NUMBER"
	WinRank       WindowFunc = "RANK"
	WinDenseRank  WindowFunc = "DENSE_RANK"
	WinNtile      WindowFunc = "NTILE"
	WinLag        WindowFunc = "LAG"
	WinLead       WindowFunc = "LEAD"
	WinFirstValue WindowFunc = "FIRST_VALUE"
	WinLastValue  WindowFunc = "LAST_VALUE"
)

// FrameBound represents window frame boundaries.
type FrameBound string

const (
	FrameUnboundedPreceding FrameBound = "UNBOUNDED PRECEDING"
	FrameCurrentRow         FrameBound = "CURRENT ROW"
	FrameUnboundedFollowing FrameBound = "UNBOUNDED FOLLOWING"
)

// WindowSpec represents a window specification (the OVER clause).
type WindowSpec struct {
	PartitionBy []Field
	OrderBy     []OrderBy
	FrameStart  FrameBound
	FrameEnd    FrameBound
}

// WindowExpression represents a window function call with OVER clause.
// When Function is empty, Aggregate carries an aggregate-over form
// (SUM(x) OVER, count() OVER).
type WindowExpression struct {
	Function   WindowFunc
	Aggregate  AggregateFunc
	Field      *Field
	NtileParam *Param
	LagOffset  *Param
	LagDefault *Param
	Window     WindowSpec
}

// FieldComparison represents a comparison between two fields.
type FieldComparison struct {
	LeftField  Field
	Operator   Operator
	RightField Field
}

// SubqueryCondition represents a condition that uses a subquery.
type SubqueryCondition struct {
	Subquery Subquery
	Field    *Field
	Operator Operator
}

// Subquery represents a nested query.
type Subquery struct {
	AST *AST
}

// Constants for subquery handling.
const (
	MaxSubqueryDepth = 3 // Prevent DoS via deep nesting
)

// Implement ConditionItem interface for new condition types.
func (FieldComparison) IsConditionItem()   {}
func (SubqueryCondition) IsConditionItem() {}

// LimitBy represents ClickHouse's LIMIT n BY fields clause, which keeps
// the first n rows per distinct value of the given fields.
type LimitBy struct {
	Fields []Field
	N      int
}

// AST represents the abstract syntax tree for ClickHouse queries.
// This is exported from the internal package so the base package can use it,
// but external users cannot import this package.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type AST struct {
	Operation        Operation
	Target           Table
	Fields           []Field
	WhereClause      ConditionItem
	Prewhere         ConditionItem // ClickHouse PREWHERE clause
	Ordering         []OrderBy
	Limit            *int
	Offset           *int
	LimitBy          *LimitBy          // ClickHouse LIMIT n BY fields
	Sample           *float64          // ClickHouse SAMPLE fraction (0, 1]
	Updates          map[Field]Param   // For UPDATE mutations
	Values           []map[Field]Param // For INSERT operations
	Joins            []Join            // JOIN clauses
	GroupBy          []Field           // GROUP BY fields
	Having           []ConditionItem   // HAVING conditions (simple or aggregate)
	FieldExpressions []FieldExpression // Field expressions (aggregates, CASE, etc)
	Final            bool              // ClickHouse FINAL modifier
	Distinct         bool              // DISTINCT flag
}

// Validate performs basic validation on the AST.
func (ast *AST) Validate() error {
	if ast.Target.Name == "" {
		return fmt.Errorf("target table is required")
	}

	switch ast.Operation {
	case OpSelect:
		// Fields are optional (defaults to *)
		// Can have JOINs, GROUP BY, HAVING, DISTINCT
	case OpInsert:
		if len(ast.Values) == 0 {
			return fmt.Errorf("INSERT requires at least one value set")
		}
		// Ensure all value sets have the same fields
		if len(ast.Values) > 1 {
			firstKeys := make(map[Field]bool)
			for k := range ast.Values[0] {
				firstKeys[k] = true
			}
			for i, valueSet := range ast.Values[1:] {
				if len(valueSet) != len(firstKeys) {
					return fmt.Errorf("value set %d has different number of fields", i+1)
				}
				for k := range valueSet {
					if !firstKeys[k] {
						return fmt.Errorf("value set %d has different fields", i+1)
					}
				}
			}
		}
		if ast.Final || ast.Sample != nil || ast.Prewhere != nil {
			return fmt.Errorf("INSERT cannot have SELECT modifiers like FINAL, SAMPLE, or PREWHERE")
		}
	case OpUpdate:
		if len(ast.Updates) == 0 {
			return fmt.Errorf("UPDATE requires at least one field to update")
		}
		if ast.WhereClause == nil {
			return fmt.Errorf("UPDATE mutations require a WHERE clause")
		}
		if ast.Distinct || len(ast.Joins) > 0 || len(ast.GroupBy) > 0 {
			return fmt.Errorf("UPDATE cannot have SELECT features like DISTINCT, JOIN, or GROUP BY")
		}
	case OpDelete:
		if ast.WhereClause == nil {
			return fmt.Errorf("DELETE mutations require a WHERE clause")
		}
		if ast.Distinct || len(ast.Joins) > 0 || len(ast.GroupBy) > 0 {
			return fmt.Errorf("DELETE cannot have SELECT features like DISTINCT, JOIN, or GROUP BY")
		}
	case OpCount:
		// COUNT can have JOINs, PREWHERE and WHERE but no fields
	default:
		return fmt.Errorf("unsupported operation: %s", ast.Operation)
	}

	// HAVING requires GROUP BY
	if len(ast.Having) > 0 && len(ast.GroupBy) == 0 {
		return fmt.Errorf("HAVING requires GROUP BY")
	}

	// SAMPLE and FINAL only apply to table scans
	if (ast.Sample != nil || ast.Final) && ast.Operation != OpSelect && ast.Operation != OpCount {
		return fmt.Errorf("FINAL and SAMPLE can only be used with SELECT or COUNT queries")
	}
	if ast.Sample != nil && (*ast.Sample <= 0 || *ast.Sample > 1) {
		return fmt.Errorf("SAMPLE fraction must be in (0, 1], got %v", *ast.Sample)
	}

	if ast.LimitBy != nil {
		if ast.Operation != OpSelect {
			return fmt.Errorf("LIMIT BY can only be used with SELECT queries")
		}
		if ast.LimitBy.N <= 0 {
			return fmt.Errorf("LIMIT BY requires a positive row count")
		}
		if len(ast.LimitBy.Fields) == 0 {
			return fmt.Errorf("LIMIT BY requires at least one field")
		}
	}

	return nil
}
