package types

// Condition represents a simple condition.
// Values are always parameters, never literals.
// This is exported from the internal package so dialect packages can use it,
// but external users cannot import this package.
type Condition struct {
	Field    Field
	Operator Operator
	Value    Param
}

// ConditionItem represents either a single condition or a group of conditions.
type ConditionItem interface {
	IsConditionItem()
}

// LogicOperator represents how conditions are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// ConditionGroup represents grouped conditions with AND/OR logic.
type ConditionGroup struct {
	Logic      LogicOperator
	Conditions []ConditionItem
}

// BetweenCondition represents a BETWEEN condition with two bound parameters.
type BetweenCondition struct {
	Field   Field
	Low     Param
	High    Param
	Negated bool
}

// AggregateCondition represents a HAVING condition on an aggregate,
// such as count() > @min or SUM(total) >= @threshold.
type AggregateCondition struct {
	Field    *Field // nil means the bare row count
	Func     AggregateFunc
	Operator Operator
	Value    Param
}

// Implement ConditionItem interface.
func (Condition) IsConditionItem()          {}
func (ConditionGroup) IsConditionItem()     {}
func (BetweenCondition) IsConditionItem()   {}
func (AggregateCondition) IsConditionItem() {}
