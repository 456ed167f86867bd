package clickql

import "strings"

// isValidSQLIdentifier checks if a string is safe to use as an identifier.
// Only allows alphanumeric characters and underscores, must start with
// letter or underscore.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	// Check for SQL injection patterns
	lower := strings.ToLower(s)

	suspiciousPatterns := []string{
		";", "--", "/*", "*/", "'", "\"", "`", "\\",
		" or ", " and ", "drop table", "delete from",
		"insert into", "update set", "select ",
		"union all", "union select",
	}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	// Reject if it contains spaces
	if strings.Contains(s, " ") {
		return false
	}

	return true
}

// isValidTableAlias checks if a string is a valid single-letter table alias.
func isValidTableAlias(alias string) bool {
	return len(alias) == 1 && alias[0] >= 'a' && alias[0] <= 'z'
}

// findAS finds the position of " AS " in a string.
func findAS(s string) int {
	for i := 0; i < len(s)-3; i++ {
		if s[i] == ' ' && s[i+1] == 'A' && s[i+2] == 'S' && s[i+3] == ' ' {
			return i
		}
	}
	return -1
}

// lastDotIndex finds the last dot in a string.
func lastDotIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
