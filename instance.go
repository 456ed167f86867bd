package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
	"github.com/zoobzio/dbml"
)

// ClickQL represents an instance of the query builder with a specific DBML schema.
type ClickQL struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewFromDBML creates a new ClickQL instance from a DBML project.
func NewFromDBML(project *dbml.Project) (*ClickQL, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	a := &ClickQL{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	// Build indexes for fast validation
	for _, table := range project.Tables {
		a.tables[table.Name] = table
		a.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			a.fields[table.Name][col.Name] = col
		}
	}

	return a, nil
}

// validateTable checks if a table exists in the schema.
func (a *ClickQL) validateTable(name string) error {
	if _, ok := a.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateField checks if a field exists in any table in the schema.
func (a *ClickQL) validateField(field string) error {
	// Handle SQL expressions with AS aliases like "e.name AS event_name"
	if asIndex := findAS(field); asIndex != -1 {
		field = field[:asIndex]
	}

	// Handle table aliases like "e.id" by extracting just the field name
	fieldName := field
	if dotIndex := lastDotIndex(field); dotIndex != -1 {
		fieldName = field[dotIndex+1:]
	}

	// Check if field exists in any table
	for _, tableFields := range a.fields {
		if _, ok := tableFields[fieldName]; ok {
			return nil // Found it
		}
	}

	return fmt.Errorf("field '%s' not found in schema", field)
}

// TryF creates a validated field reference, returning an error if invalid.
func (a *ClickQL) TryF(name string) (types.Field, error) {
	if err := a.validateField(name); err != nil {
		return types.Field{}, fmt.Errorf("invalid field: %w", err)
	}
	return types.Field{Name: name}, nil
}

// F creates a validated field reference.
func (a *ClickQL) F(name string) types.Field {
	f, err := a.TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryT creates a validated table reference, returning an error if invalid.
func (a *ClickQL) TryT(name string, alias ...string) (types.Table, error) {
	if err := a.validateTable(name); err != nil {
		return types.Table{}, fmt.Errorf("invalid table: %w", err)
	}

	var tableAlias string
	if len(alias) > 0 {
		if len(alias) > 1 {
			return types.Table{}, fmt.Errorf("only one alias allowed")
		}
		tableAlias = alias[0]
		if !isValidTableAlias(tableAlias) {
			return types.Table{}, fmt.Errorf("alias must be single lowercase letter (a-z), got: %s", tableAlias)
		}
	}

	return types.Table{Name: name, Alias: tableAlias}, nil
}

// T creates a validated table reference.
func (a *ClickQL) T(name string, alias ...string) types.Table {
	t, err := a.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryP creates a validated parameter reference, returning an error if invalid.
func (*ClickQL) TryP(name string) (types.Param, error) {
	if !isValidParamName(name) {
		return types.Param{}, fmt.Errorf("invalid parameter name: %s", name)
	}
	return types.Param{Name: name}, nil
}

// P creates a validated parameter reference.
func (a *ClickQL) P(name string) types.Param {
	p, err := a.TryP(name)
	if err != nil {
		panic(err)
	}
	return p
}

// C creates a simple condition using instance-validated components.
func (*ClickQL) C(f types.Field, op types.Operator, v types.Param) types.Condition {
	return types.Condition{Field: f, Operator: op, Value: v}
}

// Tables returns the names of tables known to the schema.
func (a *ClickQL) Tables() []string {
	names := make([]string, 0, len(a.tables))
	for name := range a.tables {
		names = append(names, name)
	}
	return names
}
