// Package clickql provides a type-safe query builder and ClickHouse backend
// for expression-tree queries.
//
// The package generates an Abstract Syntax Tree (AST) from fluent builder
// calls, then renders it to ClickHouse SQL with named parameters. Schema
// validation is available through DBML integration.
//
// # Basic Usage
//
// Queries can be built directly using the package-level builder functions:
//
//	import "github.com/zoobzio/clickql/clickhouse"
//
//	query := clickql.Select(table).
//		Fields(field1, field2).
//		Where(condition).
//		OrderBy(field1, clickql.ASC).
//		Limit(10)
//
//	result, err := query.Render(clickhouse.New())
//	// result.SQL: SELECT `field1`, `field2` FROM `table` WHERE ... ORDER BY `field1` ASC LIMIT 10
//	// result.RequiredParams: []string{"param_name", ...}
//
// # Dialect Discovery
//
// Renderers register themselves under a short alias at init time, so hosts
// can resolve a backend by name without compile-time knowledge of it:
//
//	import _ "github.com/zoobzio/clickql/clickhouse"
//
//	r, err := clickql.Dialect("clickhouse")
//
// # Schema-Validated Usage
//
// For stronger safety, create a ClickQL instance from a DBML schema:
//
//	instance, err := clickql.NewFromDBML(project)
//	if err != nil {
//		return err
//	}
//
//	// These panic if the field/table doesn't exist in the schema
//	events := instance.T("events")
//	userID := instance.F("user_id")
//
// # Supported Operations
//
// The package supports SELECT, INSERT, UPDATE, DELETE, and COUNT operations,
// along with JOINs, subqueries, aggregates, CASE expressions, set operations
// (UNION, INTERSECT, EXCEPT), and ClickHouse-specific features like FINAL,
// SAMPLE, PREWHERE, and LIMIT BY. UPDATE and DELETE render as ALTER TABLE
// mutations, which is how ClickHouse expresses them.
//
// # Output Format
//
// All queries use named parameters (`@param_name`) for use with the
// clickhouse-go driver. Identifiers are backtick-quoted to handle reserved
// words.
package clickql

import "github.com/zoobzio/clickql/internal/types"

// AST represents the abstract syntax tree for a query.
// This is re-exported from internal/types for use by consumers.
type AST = types.AST

// QueryResult contains the rendered SQL and required parameters.
type QueryResult = types.QueryResult

// Operation represents the type of query operation.
type Operation = types.Operation

// Re-export operation constants for public API.
const (
	OpSelect = types.OpSelect
	OpInsert = types.OpInsert
	OpUpdate = types.OpUpdate
	OpDelete = types.OpDelete
	OpCount  = types.OpCount
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// Operator represents SQL comparison operators.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Basic comparison operators.
	EQ = types.EQ
	NE = types.NE
	GT = types.GT
	GE = types.GE
	LT = types.LT
	LE = types.LE

	// Extended operators.
	IN        = types.IN
	NotIn     = types.NotIn
	GlobalIn  = types.GlobalIn
	LIKE      = types.LIKE
	NotLike   = types.NotLike
	ILIKE     = types.ILIKE
	NotILike  = types.NotILike
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull
	EXISTS    = types.EXISTS
	NotExists = types.NotExists
)

// Field represents a validated field reference.
type Field = types.Field

// Table represents a validated table reference.
type Table = types.Table

// Param represents a named parameter reference.
type Param = types.Param

// Condition represents a simple field/operator/parameter condition.
type Condition = types.Condition

// ConditionGroup represents grouped conditions with AND/OR logic.
type ConditionGroup = types.ConditionGroup

// ConditionItem represents either a single condition or a group of conditions.
type ConditionItem = types.ConditionItem

// AggregateCondition represents a HAVING condition on an aggregate.
// Use with Builder.HavingAgg() for conditions like count() > @min.
type AggregateCondition = types.AggregateCondition

// BetweenCondition represents a BETWEEN condition with two bounds.
type BetweenCondition = types.BetweenCondition

// FieldComparison represents a comparison between two fields.
type FieldComparison = types.FieldComparison

// Subquery represents a nested SELECT query.
type Subquery = types.Subquery

// SubqueryCondition represents a condition that uses a subquery.
type SubqueryCondition = types.SubqueryCondition

// FieldExpression represents a field with optional aggregate or SQL expression.
type FieldExpression = types.FieldExpression

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc = types.AggregateFunc

// Re-export aggregate function constants for public API.
const (
	AggSum           = types.AggSum
	AggAvg           = types.AggAvg
	AggMin           = types.AggMin
	AggMax           = types.AggMax
	AggCountField    = types.AggCountField
	AggCountDistinct = types.AggCountDistinct
)

// DatePart represents the component extracted or truncated from a date.
type DatePart = types.DatePart

// Re-export date part constants for public API.
const (
	PartYear    = types.PartYear
	PartQuarter = types.PartQuarter
	PartMonth   = types.PartMonth
	PartDay     = types.PartDay
	PartHour    = types.PartHour
	PartMinute  = types.PartMinute
	PartSecond  = types.PartSecond
)

// WindowFunc represents window function types.
type WindowFunc = types.WindowFunc

// Re-export window function constants for public API.
const (
	WinRowNumber  = types.WinRowNumber
	WinRank       = types.WinRank
	WinDenseRank  = types.WinDenseRank
	WinNtile      = types.WinNtile
	WinLag        = types.WinLag
	WinLead       = types.WinLead
	WinFirstValue = types.WinFirstValue
	WinLastValue  = types.WinLastValue
)

// FrameBound represents window frame boundaries.
type FrameBound = types.FrameBound

// Re-export frame bound constants for public API.
const (
	FrameUnboundedPreceding = types.FrameUnboundedPreceding
	FrameCurrentRow         = types.FrameCurrentRow
	FrameUnboundedFollowing = types.FrameUnboundedFollowing
)

// WindowExpression represents a window function call with OVER clause.
type WindowExpression = types.WindowExpression

// WindowSpec represents a window specification.
type WindowSpec = types.WindowSpec

// OrderBy pairs a field with a sort direction.
type OrderBy = types.OrderBy

// JoinType represents the type of SQL join.
type JoinType = types.JoinType

// Re-export join type constants for public API.
const (
	InnerJoin = types.InnerJoin
	LeftJoin  = types.LeftJoin
	CrossJoin = types.CrossJoin
)

// SetOperation represents SQL set operations (UNION, INTERSECT, EXCEPT).
type SetOperation = types.SetOperation

// Re-export set operation constants for public API.
const (
	SetUnion        = types.SetUnion
	SetUnionAll     = types.SetUnionAll
	SetIntersect    = types.SetIntersect
	SetIntersectAll = types.SetIntersectAll
	SetExcept       = types.SetExcept
	SetExceptAll    = types.SetExceptAll
)

// CompoundQuery represents a query with set operations.
type CompoundQuery = types.CompoundQuery

// LimitBy represents ClickHouse's LIMIT n BY fields clause.
type LimitBy = types.LimitBy
