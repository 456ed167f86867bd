package integration

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/clickql/clickhouse"
	"github.com/zoobzio/dbml"
)

// createTestInstance creates a ClickQL instance matching the test schema.
func createTestInstance(t *testing.T) *clickql.ClickQL {
	t.Helper()

	project := dbml.NewProject("clickql_test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "UInt64"))
	users.AddColumn(dbml.NewColumn("username", "String"))
	users.AddColumn(dbml.NewColumn("email", "String"))
	users.AddColumn(dbml.NewColumn("age", "Nullable(UInt8)"))
	users.AddColumn(dbml.NewColumn("active", "Bool"))
	project.AddTable(users)

	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UInt64"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("event_type", "LowCardinality(String)"))
	events.AddColumn(dbml.NewColumn("timestamp", "DateTime64(3)"))
	events.AddColumn(dbml.NewColumn("payload", "String"))
	events.AddColumn(dbml.NewColumn("duration_ms", "Nullable(UInt32)"))
	project.AddTable(events)

	instance, err := clickql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

// seedUsers loads a fixed set of user rows.
func seedUsers(ctx context.Context, t *testing.T, cc *ClickHouseContainer) {
	t.Helper()

	age := func(v uint8) *uint8 { return &v }
	rows := [][]any{
		{uint64(1), "alice", "alice@example.com", age(30), true},
		{uint64(2), "bob", "bob@example.com", age(25), true},
		{uint64(3), "carol", "carol@example.com", (*uint8)(nil), false},
	}

	err := cc.client.LoadData(ctx, "users",
		[]string{"id", "username", "email", "age", "active"}, rows)
	if err != nil {
		t.Fatalf("Failed to load users: %v", err)
	}
}

func TestClickHouseRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)
	seedUsers(ctx, t, cc)

	q := createTestInstance(t)
	builder := clickql.Select(q.T("users")).
		Fields(q.F("username"), q.F("email")).
		Where(q.C(q.F("active"), clickql.EQ, q.P("is_active"))).
		OrderBy(q.F("username"), clickql.ASC)

	table, err := cc.client.ExecuteBuilder(ctx, builder, map[string]any{
		"is_active": true,
	})
	if err != nil {
		t.Fatalf("Failed to execute query: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}
	if got := table.Row(0)[0]; got != "alice" {
		t.Errorf("Expected first username alice, got %v", got)
	}
	if got := table.Row(1)[0]; got != "bob" {
		t.Errorf("Expected second username bob, got %v", got)
	}
}

func TestClickHouseAggregates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)
	seedUsers(ctx, t, cc)

	q := createTestInstance(t)
	builder := clickql.Select(q.T("users")).
		Fields(q.F("active")).
		Expressions(clickql.As(clickql.CountField(q.F("id")), "n")).
		GroupBy(q.F("active")).
		OrderBy(q.F("active"), clickql.ASC)

	table, err := cc.client.ExecuteBuilder(ctx, builder, nil)
	if err != nil {
		t.Fatalf("Failed to execute aggregate query: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Expected 2 groups, got %d", table.Len())
	}

	counts, err := table.Column("n")
	if err != nil {
		t.Fatalf("Failed to fetch count column: %v", err)
	}
	// false group has 1 user, true group has 2
	if counts[0] != uint64(1) || counts[1] != uint64(2) {
		t.Errorf("Unexpected group counts: %v", counts)
	}
}

func TestClickHouseCount(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)
	seedUsers(ctx, t, cc)

	q := createTestInstance(t)
	builder := clickql.Count(q.T("users")).
		Where(q.C(q.F("active"), clickql.EQ, q.P("is_active")))

	table, err := cc.client.ExecuteBuilder(ctx, builder, map[string]any{
		"is_active": false,
	})
	if err != nil {
		t.Fatalf("Failed to execute count: %v", err)
	}

	if table.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", table.Len())
	}
	if got := table.Row(0)[0]; got != uint64(1) {
		t.Errorf("Expected count 1, got %v", got)
	}
}

func TestClickHouseInsertAndMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)
	seedUsers(ctx, t, cc)

	q := createTestInstance(t)
	renderer := clickhouse.New()

	// INSERT a new user
	insert := clickql.Insert(q.T("users")).
		Value(q.F("id"), q.P("id")).
		Value(q.F("username"), q.P("username")).
		Value(q.F("email"), q.P("email")).
		Value(q.F("age"), q.P("age")).
		Value(q.F("active"), q.P("active"))
	result, err := insert.Render(renderer)
	if err != nil {
		t.Fatalf("Failed to render insert: %v", err)
	}
	err = cc.client.Exec(ctx, result, map[string]any{
		"id": uint64(4), "username": "dave", "email": "dave@example.com",
		"age": uint8(40), "active": true,
	})
	if err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	// UPDATE mutation
	update := clickql.Update(q.T("users")).
		Set(q.F("email"), q.P("new_email")).
		Where(q.C(q.F("id"), clickql.EQ, q.P("target_id")))
	result, err = update.Render(renderer)
	if err != nil {
		t.Fatalf("Failed to render update: %v", err)
	}
	err = cc.client.Exec(ctx, result, map[string]any{
		"new_email": "dave@clickql.dev", "target_id": uint64(4),
	})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	sel := clickql.Select(q.T("users")).
		Fields(q.F("email")).
		Where(q.C(q.F("id"), clickql.EQ, q.P("target_id")))
	table, err := cc.client.ExecuteBuilder(ctx, sel, map[string]any{"target_id": uint64(4)})
	if err != nil {
		t.Fatalf("Failed to select after update: %v", err)
	}
	if table.Len() != 1 || table.Row(0)[0] != "dave@clickql.dev" {
		t.Fatalf("Update not applied, got %d rows: %v", table.Len(), table)
	}

	// DELETE mutation
	del := clickql.Delete(q.T("users")).
		Where(q.C(q.F("id"), clickql.EQ, q.P("target_id")))
	result, err = del.Render(renderer)
	if err != nil {
		t.Fatalf("Failed to render delete: %v", err)
	}
	err = cc.client.Exec(ctx, result, map[string]any{"target_id": uint64(4)})
	if err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	table, err = cc.client.ExecuteBuilder(ctx, sel, map[string]any{"target_id": uint64(4)})
	if err != nil {
		t.Fatalf("Failed to select after delete: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Expected 0 rows after delete, got %d", table.Len())
	}
}

func TestClickHouseDescribeTable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)

	schema, err := cc.client.DescribeTable(ctx, "events")
	if err != nil {
		t.Fatalf("Failed to describe events: %v", err)
	}

	if len(schema.Columns) != 6 {
		t.Fatalf("Expected 6 columns, got %d", len(schema.Columns))
	}

	byName := make(map[string]clickhouse.DataType)
	for _, col := range schema.Columns {
		byName[col.Name] = col.Type
	}

	if dt := byName["duration_ms"]; !dt.Nullable || dt.Kind != clickhouse.KindUInt32 {
		t.Errorf("Expected duration_ms Nullable(UInt32), got %s", dt)
	}
	if dt := byName["event_type"]; !dt.LowCardinality || dt.Kind != clickhouse.KindString {
		t.Errorf("Expected event_type LowCardinality(String), got %s", dt)
	}
	if dt := byName["timestamp"]; dt.Kind != clickhouse.KindDateTime || dt.Precision != 3 {
		t.Errorf("Expected timestamp DateTime64(3), got %s", dt)
	}
}

func TestClickHouseCatalog(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)

	version, err := cc.client.Version()
	if err != nil {
		t.Fatalf("Failed to fetch version: %v", err)
	}
	if version == "" {
		t.Error("Expected non-empty version")
	}

	db, err := cc.client.CurrentDatabase(ctx)
	if err != nil {
		t.Fatalf("Failed to fetch current database: %v", err)
	}
	if db != "clickql_test" {
		t.Errorf("Expected database clickql_test, got %s", db)
	}

	tables, err := cc.client.ListTables(ctx, "^ev")
	if err != nil {
		t.Fatalf("Failed to list tables: %v", err)
	}
	if len(tables) != 1 || tables[0] != "events" {
		t.Errorf("Expected [events], got %v", tables)
	}

	exists, err := cc.client.TableExists(ctx, "users")
	if err != nil {
		t.Fatalf("Failed to check users: %v", err)
	}
	if !exists {
		t.Error("Expected users to exist")
	}

	exists, err = cc.client.TableExists(ctx, "missing")
	if err != nil {
		t.Fatalf("Failed to check missing: %v", err)
	}
	if exists {
		t.Error("Expected missing to not exist")
	}
}

func TestClickHouseTruncateAndEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cc := getContainer(t)
	setupSchema(ctx, t, cc)

	now := time.Now().UTC()
	dur := func(v uint32) *uint32 { return &v }
	rows := [][]any{
		{uint64(1), uint64(1), "click", now, `{"x":1}`, dur(12)},
		{uint64(2), uint64(1), "view", now.Add(time.Second), `{"x":2}`, dur(740)},
		{uint64(3), uint64(2), "click", now.Add(2 * time.Second), `{"x":3}`, (*uint32)(nil)},
	}
	err := cc.client.LoadData(ctx, "events",
		[]string{"id", "user_id", "event_type", "timestamp", "payload", "duration_ms"}, rows)
	if err != nil {
		t.Fatalf("Failed to load events: %v", err)
	}

	q := createTestInstance(t)
	count := clickql.Count(q.T("events"))
	table, err := cc.client.ExecuteBuilder(ctx, count, nil)
	if err != nil {
		t.Fatalf("Failed to count events: %v", err)
	}
	if got := table.Row(0)[0]; got != uint64(3) {
		t.Fatalf("Expected 3 events, got %v", got)
	}

	if err := cc.client.TruncateTable(ctx, "events"); err != nil {
		t.Fatalf("Failed to truncate events: %v", err)
	}

	table, err = cc.client.ExecuteBuilder(ctx, count, nil)
	if err != nil {
		t.Fatalf("Failed to count events after truncate: %v", err)
	}
	if got := table.Row(0)[0]; got != uint64(0) {
		t.Errorf("Expected 0 events after truncate, got %v", got)
	}
}
