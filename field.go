package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
)

func init() {
	// Fields built through the package-level constructors only get shape
	// validation; instances built from a DBML schema validate existence too.
	types.SetTableValidator(validateTableOrAlias)
}

// TryF creates a validated field reference, returning an error if invalid.
func TryF(name string) (types.Field, error) {
	if !isValidSQLIdentifier(name) {
		return types.Field{}, fmt.Errorf("invalid field name: %s", name)
	}
	return types.Field{Name: name}, nil
}

// F creates a validated field reference.
func F(name string) types.Field {
	f, err := TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// validateTableOrAlias validates both table names and aliases.
// This is used as the validator callback for types.Field.WithTable.
func validateTableOrAlias(tableOrAlias string) error {
	// Must be either:
	// 1. A single lowercase letter (table alias), OR
	// 2. A well-formed table name
	if isValidTableAlias(tableOrAlias) {
		return nil
	}
	if isValidSQLIdentifier(tableOrAlias) {
		return nil
	}
	return fmt.Errorf("WithTable requires single-letter alias (a-z) or valid table name, got: %s", tableOrAlias)
}
