package types

// QueryResult is the output of rendering: the SQL text plus the names of
// every parameter the query expects values for at execution time.
type QueryResult struct {
	SQL            string
	RequiredParams []string
}
