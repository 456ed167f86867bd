package types

// Param is a named parameter reference. Values are never embedded in the
// AST; rendering emits a placeholder and records the name in the result.
// This is exported from the internal package so dialect packages can use it,
// but external users cannot import this package.
type Param struct {
	Name string
}

// GetName returns the parameter name.
func (p Param) GetName() string {
	return p.Name
}
