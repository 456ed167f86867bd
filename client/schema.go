package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/zoobzio/clickql/clickhouse"
)

// ColumnDesc is one row of a DESCRIBE TABLE result.
type ColumnDesc struct {
	Name    string
	Type    clickhouse.DataType
	Default string
	Comment string
}

// Schema describes a table's columns in declaration order.
type Schema struct {
	Table   string
	Columns []ColumnDesc
}

// DescribeTable fetches the schema of a table.
func (c *Client) DescribeTable(ctx context.Context, name string) (*Schema, error) {
	rows, err := c.conn.Query(ctx, fmt.Sprintf("DESCRIBE TABLE %s", quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("describing table %s: %w", name, err)
	}
	defer rows.Close()

	schema := &Schema{Table: name}
	for rows.Next() {
		var colName, colType, defaultKind, defaultExpr, comment, codec, ttl string
		if err := rows.Scan(&colName, &colType, &defaultKind, &defaultExpr, &comment, &codec, &ttl); err != nil {
			return nil, fmt.Errorf("describing table %s: %w", name, err)
		}

		dt, err := clickhouse.ParseDataType(colType)
		if err != nil {
			return nil, fmt.Errorf("describing table %s, column %s: %w", name, colName, err)
		}

		schema.Columns = append(schema.Columns, ColumnDesc{
			Name:    colName,
			Type:    dt,
			Default: defaultExpr,
			Comment: comment,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describing table %s: %w", name, err)
	}

	return schema, nil
}

// ListDatabases returns database names on the server, optionally
// filtered by a regular expression.
func (c *Client) ListDatabases(ctx context.Context, like string) ([]string, error) {
	return c.queryNames(ctx, "SHOW DATABASES", like)
}

// ListTables returns table names in the session database, optionally
// filtered by a regular expression.
func (c *Client) ListTables(ctx context.Context, like string) ([]string, error) {
	return c.queryNames(ctx, "SHOW TABLES", like)
}

// ListTablesIn returns table names in the given database, optionally
// filtered by a regular expression.
func (c *Client) ListTablesIn(ctx context.Context, database, like string) ([]string, error) {
	return c.queryNames(ctx, fmt.Sprintf("SHOW TABLES FROM %s", quoteIdent(database)), like)
}

// TableExists reports whether the named table exists in the session database.
func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	var exists uint8
	row := c.conn.QueryRow(ctx, fmt.Sprintf("EXISTS TABLE %s", quoteIdent(name)))
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return exists == 1, nil
}

// queryNames runs a single-column name query with optional regexp filtering.
func (c *Client) queryNames(ctx context.Context, sql, like string) ([]string, error) {
	var filter *regexp.Regexp
	if like != "" {
		var err error
		filter, err = regexp.Compile(like)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", like, err)
		}
	}

	rows, err := c.conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("executing %q: %w", sql, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if filter != nil && !filter.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
