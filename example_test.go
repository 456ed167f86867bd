package clickql_test

import (
	"fmt"

	"github.com/zoobzio/clickql"
	_ "github.com/zoobzio/clickql/clickhouse"
	"github.com/zoobzio/dbml"
)

func exampleInstance() *clickql.ClickQL {
	project := dbml.NewProject("example")
	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UInt64"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("event_type", "LowCardinality(String)"))
	events.AddColumn(dbml.NewColumn("created_at", "DateTime64(3)"))
	project.AddTable(events)

	instance, err := clickql.NewFromDBML(project)
	if err != nil {
		panic(err)
	}
	return instance
}

func ExampleSelect() {
	q := exampleInstance()

	// Build a SELECT query using schema-validated helpers
	query := clickql.Select(q.T("events")).
		Fields(q.F("id"), q.F("event_type")).
		Where(clickql.And(
			clickql.C(q.F("user_id"), clickql.EQ, q.P("user_id")),
			clickql.C(q.F("event_type"), clickql.LIKE, q.P("pattern")),
		)).
		OrderBy(q.F("created_at"), clickql.DESC).
		Limit(10).
		MustBuild()

	fmt.Printf("Operation: %s\n", query.Operation)
	fmt.Printf("Table: %s\n", query.Target.Name)
	fmt.Printf("Fields: %d\n", len(query.Fields))

	// Output:
	// Operation: SELECT
	// Table: events
	// Fields: 2
}

func ExampleBuilder_Render() {
	q := exampleInstance()

	renderer, err := clickql.Dialect("clickhouse")
	if err != nil {
		panic(err)
	}

	result := clickql.Select(q.T("events")).
		Fields(q.F("id")).
		WhereField(q.F("user_id"), clickql.EQ, q.P("user_id")).
		MustRender(renderer)

	fmt.Println(result.SQL)
	fmt.Println(result.RequiredParams)

	// Output:
	// SELECT `id` FROM `events` WHERE `user_id` = @user_id
	// [user_id]
}
