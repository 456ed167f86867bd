package client

import (
	"context"
	"fmt"
	"strings"
)

// CreateTableOptions controls CREATE TABLE statement generation.
type CreateTableOptions struct {
	// Engine defaults to MergeTree.
	Engine string
	// OrderBy columns for the sorting key. Empty renders ORDER BY tuple().
	OrderBy []string
	// Temporary tables live for the session and ignore Engine.
	Temporary bool
	// IfNotExists suppresses the error when the table already exists.
	IfNotExists bool
}

// quoteIdent backtick-quotes an identifier, escaping embedded backticks.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// buildCreateTable renders a CREATE TABLE statement.
func buildCreateTable(name string, columns []Column, opts CreateTableOptions) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("table %s needs at least one column", name)
	}

	var sql strings.Builder
	sql.WriteString("CREATE ")
	if opts.Temporary {
		sql.WriteString("TEMPORARY ")
	}
	sql.WriteString("TABLE ")
	if opts.IfNotExists {
		sql.WriteString("IF NOT EXISTS ")
	}
	sql.WriteString(quoteIdent(name))

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(col.Name), col.Type)
	}
	sql.WriteString(" (")
	sql.WriteString(strings.Join(defs, ", "))
	sql.WriteString(")")

	if !opts.Temporary {
		engine := opts.Engine
		if engine == "" {
			engine = "MergeTree"
		}
		sql.WriteString(" ENGINE = ")
		sql.WriteString(engine)

		if strings.Contains(engine, "MergeTree") {
			sql.WriteString(" ORDER BY ")
			if len(opts.OrderBy) == 0 {
				sql.WriteString("tuple()")
			} else {
				keys := make([]string, len(opts.OrderBy))
				for i, k := range opts.OrderBy {
					keys[i] = quoteIdent(k)
				}
				sql.WriteString(strings.Join(keys, ", "))
			}
		}
	}

	return sql.String(), nil
}

// CreateTable creates a table with the given columns.
func (c *Client) CreateTable(ctx context.Context, name string, columns []Column, opts CreateTableOptions) error {
	sql, err := buildCreateTable(name, columns, opts)
	if err != nil {
		return err
	}
	if err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("creating table %s: %w", name, err)
	}
	return nil
}

// DropTable drops a table. With force set, a missing table is not an error.
func (c *Client) DropTable(ctx context.Context, name string, force bool) error {
	sql := "DROP TABLE "
	if force {
		sql += "IF EXISTS "
	}
	sql += quoteIdent(name)

	if err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("dropping table %s: %w", name, err)
	}
	return nil
}

// TruncateTable removes all rows from a table.
func (c *Client) TruncateTable(ctx context.Context, name string) error {
	if err := c.conn.Exec(ctx, "TRUNCATE TABLE "+quoteIdent(name)); err != nil {
		return fmt.Errorf("truncating table %s: %w", name, err)
	}
	return nil
}

// RenameTable renames a table.
func (c *Client) RenameTable(ctx context.Context, from, to string) error {
	sql := fmt.Sprintf("RENAME TABLE %s TO %s", quoteIdent(from), quoteIdent(to))
	if err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("renaming table %s to %s: %w", from, to, err)
	}
	return nil
}

// CreateView creates a view from a parameterless rendered query.
func (c *Client) CreateView(ctx context.Context, name, selectSQL string) error {
	sql := fmt.Sprintf("CREATE VIEW %s AS %s", quoteIdent(name), selectSQL)
	if err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("creating view %s: %w", name, err)
	}
	return nil
}

// DropView drops a view. With force set, a missing view is not an error.
func (c *Client) DropView(ctx context.Context, name string, force bool) error {
	sql := "DROP VIEW "
	if force {
		sql += "IF EXISTS "
	}
	sql += quoteIdent(name)

	if err := c.conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("dropping view %s: %w", name, err)
	}
	return nil
}

// CreateDatabase creates a database.
func (c *Client) CreateDatabase(ctx context.Context, name string) error {
	if err := c.conn.Exec(ctx, "CREATE DATABASE "+quoteIdent(name)); err != nil {
		return fmt.Errorf("creating database %s: %w", name, err)
	}
	return nil
}

// DropDatabase drops a database. Without force, a database that still
// contains tables is refused.
func (c *Client) DropDatabase(ctx context.Context, name string, force bool) error {
	if !force {
		tables, err := c.ListTablesIn(ctx, name, "")
		if err != nil {
			return fmt.Errorf("dropping database %s: %w", name, err)
		}
		if len(tables) > 0 {
			return fmt.Errorf("database %s is not empty (%d tables); use force to drop anyway", name, len(tables))
		}
	}

	if err := c.conn.Exec(ctx, "DROP DATABASE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("dropping database %s: %w", name, err)
	}
	return nil
}

// LoadData bulk-inserts rows into a table using a native-protocol batch.
func (c *Client) LoadData(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(quoteIdent(table))
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, col := range columns {
			quoted[i] = quoteIdent(col)
		}
		sql.WriteString(" (")
		sql.WriteString(strings.Join(quoted, ", "))
		sql.WriteString(")")
	}

	batch, err := c.conn.PrepareBatch(ctx, sql.String())
	if err != nil {
		return fmt.Errorf("preparing batch for %s: %w", table, err)
	}

	for i, row := range rows {
		if err := batch.Append(row...); err != nil {
			return fmt.Errorf("appending row %d to %s: %w", i, table, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("sending batch to %s: %w", table, err)
	}
	return nil
}
