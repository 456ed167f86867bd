package clickql

import (
	"fmt"

	"github.com/zoobzio/clickql/internal/types"
)

// TryP creates a validated parameter reference, returning an error if invalid.
func TryP(name string) (types.Param, error) {
	if !isValidParamName(name) {
		return types.Param{}, fmt.Errorf("invalid parameter name '%s': must be alphanumeric with underscores, starting with letter", name)
	}
	return types.Param{Name: name}, nil
}

// P creates a parameter reference.
// This is the primary way to reference user values in queries.
func P(name string) types.Param {
	p, err := TryP(name)
	if err != nil {
		panic(err)
	}
	return p
}

// isValidParamName only allows alphanumeric characters and underscores,
// must start with a letter.
func isValidParamName(name string) bool {
	if name == "" {
		return false
	}

	// Must start with letter (not underscore for params)
	first := name[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z')) {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return true
}
