package client

import (
	"context"
	"fmt"
	"reflect"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/clickql/clickhouse"
)

// Client wraps a native-protocol ClickHouse connection.
type Client struct {
	conn     driver.Conn
	cfg      Config
	renderer *clickhouse.Renderer
}

// Connect opens a connection and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	conn, err := ch.Open(cfg.options())
	if err != nil {
		return nil, fmt.Errorf("opening connection to %s: %w", cfg.Addr(), err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging %s: %w", cfg.Addr(), err)
	}

	return &Client{
		conn:     conn,
		cfg:      cfg.withDefaults(),
		renderer: clickhouse.New(),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Version returns the server version as "major.minor.patch".
func (c *Client) Version() (string, error) {
	v, err := c.conn.ServerVersion()
	if err != nil {
		return "", fmt.Errorf("fetching server version: %w", err)
	}
	return fmt.Sprintf("%d.%d.%d", v.Version.Major, v.Version.Minor, v.Version.Patch), nil
}

// CurrentDatabase returns the session's active database.
func (c *Client) CurrentDatabase(ctx context.Context) (string, error) {
	var db string
	row := c.conn.QueryRow(ctx, "SELECT currentDatabase()")
	if err := row.Scan(&db); err != nil {
		return "", fmt.Errorf("fetching current database: %w", err)
	}
	return db, nil
}

// bindParams converts the rendered query's required parameters to driver
// arguments, failing on any missing binding.
func bindParams(query *clickql.QueryResult, params map[string]any) ([]any, error) {
	args := make([]any, 0, len(query.RequiredParams))
	for _, name := range query.RequiredParams {
		value, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		args = append(args, ch.Named(name, value))
	}
	return args, nil
}

// Execute runs a rendered query and materializes the full result set.
func (c *Client) Execute(ctx context.Context, query *clickql.QueryResult, params map[string]any) (*Table, error) {
	args, err := bindParams(query, params)
	if err != nil {
		return nil, err
	}

	rows, err := c.conn.Query(ctx, query.SQL, args...)
	if err != nil {
		return nil, fmt.Errorf("executing %q: %w", query.SQL, err)
	}
	defer rows.Close()

	table, err := materialize(rows)
	if err != nil {
		return nil, fmt.Errorf("reading results of %q: %w", query.SQL, err)
	}
	return table, nil
}

// ExecuteBuilder renders a builder with the ClickHouse dialect and executes it.
func (c *Client) ExecuteBuilder(ctx context.Context, builder *clickql.Builder, params map[string]any) (*Table, error) {
	query, err := builder.Render(c.renderer)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, query, params)
}

// Exec runs a rendered statement that produces no result set, such as
// an INSERT or a mutation.
func (c *Client) Exec(ctx context.Context, query *clickql.QueryResult, params map[string]any) error {
	args, err := bindParams(query, params)
	if err != nil {
		return err
	}

	if err := c.conn.Exec(ctx, query.SQL, args...); err != nil {
		return fmt.Errorf("executing %q: %w", query.SQL, err)
	}
	return nil
}

// materialize drains a result set into a Table, using the driver's scan
// types to allocate destinations column by column.
func materialize(rows driver.Rows) (*Table, error) {
	columnTypes := rows.ColumnTypes()

	columns := make([]Column, len(columnTypes))
	for i, ct := range columnTypes {
		dt, err := clickhouse.ParseDataType(ct.DatabaseTypeName())
		if err != nil {
			// Unrecognized types still materialize; they just lose
			// the parsed classification
			dt = clickhouse.DataType{Kind: clickhouse.KindString}
		}
		columns[i] = Column{Name: ct.Name(), Type: dt}
	}

	table := NewTable(columns)

	for rows.Next() {
		dests := make([]any, len(columnTypes))
		for i, ct := range columnTypes {
			dests[i] = reflect.New(ct.ScanType()).Interface()
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}

		row := make([]any, len(dests))
		for i, d := range dests {
			row[i] = reflect.ValueOf(d).Elem().Interface()
		}
		if err := table.AppendRow(row); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
