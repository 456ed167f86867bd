package types

import "fmt"

// SetOperation represents SQL set operations combining SELECT queries.
type SetOperation string

const (
	SetUnion        SetOperation = "UNION DISTINCT"
	SetUnionAll     SetOperation = "UNION ALL"
	SetIntersect    SetOperation = "INTERSECT"
	SetIntersectAll SetOperation = "INTERSECT ALL"
	SetExcept       SetOperation = "EXCEPT"
	SetExceptAll    SetOperation = "EXCEPT ALL"
)

// SetOperand represents one additional operand in a compound query.
type SetOperand struct {
	AST *AST
	Op  SetOperation
}

// CompoundQuery represents a query built from set operations
// (UNION, INTERSECT, EXCEPT) over SELECT queries.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type CompoundQuery struct {
	First    *AST
	Rest     []SetOperand
	Ordering []OrderBy
	Limit    *int
	Offset   *int
}

// Validate checks the compound query structure.
func (cq *CompoundQuery) Validate() error {
	if cq.First == nil {
		return fmt.Errorf("compound query requires a first operand")
	}
	if len(cq.Rest) == 0 {
		return fmt.Errorf("compound query requires at least two operands")
	}

	operands := make([]*AST, 0, len(cq.Rest)+1)
	operands = append(operands, cq.First)
	for _, op := range cq.Rest {
		operands = append(operands, op.AST)
	}

	for i, ast := range operands {
		if ast == nil {
			return fmt.Errorf("operand %d is nil", i)
		}
		if ast.Operation != OpSelect {
			return fmt.Errorf("set operations require SELECT queries, operand %d is %s", i, ast.Operation)
		}
		if err := ast.Validate(); err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
	}

	return nil
}
