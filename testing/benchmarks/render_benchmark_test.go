// Package benchmarks provides performance benchmarks for clickql.
package benchmarks

import (
	"testing"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/clickql/clickhouse"
	"github.com/zoobzio/dbml"
)

func createBenchmarkInstance(b *testing.B) *clickql.ClickQL {
	b.Helper()

	project := dbml.NewProject("bench")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "UInt64"))
	users.AddColumn(dbml.NewColumn("username", "String"))
	users.AddColumn(dbml.NewColumn("email", "String"))
	users.AddColumn(dbml.NewColumn("age", "Nullable(UInt8)"))
	users.AddColumn(dbml.NewColumn("active", "UInt8"))
	users.AddColumn(dbml.NewColumn("created_at", "DateTime64(3)"))
	project.AddTable(users)

	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UInt64"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("event_type", "LowCardinality(String)"))
	events.AddColumn(dbml.NewColumn("duration_ms", "UInt32"))
	project.AddTable(events)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "UInt64"))
	orders.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	orders.AddColumn(dbml.NewColumn("total", "Decimal(18, 4)"))
	orders.AddColumn(dbml.NewColumn("status", "LowCardinality(String)"))
	project.AddTable(orders)

	instance, err := clickql.NewFromDBML(project)
	if err != nil {
		b.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

// BenchmarkSimpleSelect measures simple SELECT query rendering.
func BenchmarkSimpleSelect(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithFields measures SELECT with explicit fields.
func BenchmarkSelectWithFields(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).Fields(
			instance.F("id"),
			instance.F("username"),
			instance.F("email"),
			instance.F("age"),
		).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithWhere measures SELECT with WHERE clause.
func BenchmarkSelectWithWhere(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	cond := clickql.C(instance.F("active"), clickql.EQ, instance.P("is_active"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).Where(cond).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithMultipleConditions measures nested condition groups.
func BenchmarkSelectWithMultipleConditions(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	cond := clickql.And(
		clickql.C(instance.F("active"), clickql.EQ, instance.P("is_active")),
		clickql.Or(
			clickql.C(instance.F("age"), clickql.GT, instance.P("min_age")),
			clickql.Null(instance.F("age")),
		),
	)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).Where(cond).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithJoin measures SELECT with an INNER JOIN.
func BenchmarkSelectWithJoin(b *testing.B) {
	instance := createBenchmarkInstance(b)
	users := instance.T("users", "u")
	events := instance.T("events", "e")
	on := clickql.CF(
		instance.F("u.id"),
		clickql.EQ,
		instance.F("e.user_id"),
	)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(users).
			InnerJoin(events, on).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithOrderByLimit measures ordering and pagination.
func BenchmarkSelectWithOrderByLimit(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			OrderBy(instance.F("created_at"), clickql.DESC).
			Limit(20).
			Offset(40).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithAggregates measures GROUP BY with aggregate expressions.
func BenchmarkSelectWithAggregates(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			Fields(instance.F("event_type")).
			Expressions(
				clickql.As(clickql.CountField(instance.F("id")), "n"),
				clickql.As(clickql.Avg(instance.F("duration_ms")), "avg_duration"),
			).
			GroupBy(instance.F("event_type")).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithPrewhere measures the PREWHERE fast path.
func BenchmarkSelectWithPrewhere(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")
	pre := clickql.C(instance.F("user_id"), clickql.EQ, instance.P("uid"))
	where := clickql.C(instance.F("event_type"), clickql.EQ, instance.P("et"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			Prewhere(pre).
			Where(where).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectWithLimitBy measures the LIMIT BY clause.
func BenchmarkSelectWithLimitBy(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			LimitBy(3, instance.F("user_id")).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSelectFinalSample measures FINAL with SAMPLE.
func BenchmarkSelectFinalSample(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			Final().
			Sample(0.1).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkInsert measures INSERT rendering.
func BenchmarkInsert(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Insert(table).
			Value(instance.F("username"), instance.P("username")).
			Value(instance.F("email"), instance.P("email")).
			Value(instance.F("active"), instance.P("active")).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkUpdate measures ALTER TABLE UPDATE mutation rendering.
func BenchmarkUpdate(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	cond := clickql.C(instance.F("id"), clickql.EQ, instance.P("user_id"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Update(table).
			Set(instance.F("email"), instance.P("new_email")).
			Where(cond).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDelete measures ALTER TABLE DELETE mutation rendering.
func BenchmarkDelete(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	cond := clickql.C(instance.F("id"), clickql.EQ, instance.P("user_id"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Delete(table).Where(cond).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCount measures COUNT rendering.
func BenchmarkCount(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")
	cond := clickql.C(instance.F("event_type"), clickql.EQ, instance.P("et"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Count(table).Where(cond).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCaseExpression measures CASE expression rendering.
func BenchmarkCaseExpression(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("orders")
	expr := clickql.Case().
		When(clickql.C(instance.F("total"), clickql.GT, instance.P("high")), instance.P("high_label")).
		When(clickql.C(instance.F("total"), clickql.GT, instance.P("mid")), instance.P("mid_label")).
		Else(instance.P("low_label")).
		As("bucket")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			Fields(instance.F("id")).
			Expressions(expr).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCoalesce measures COALESCE rendering.
func BenchmarkCoalesce(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	expr := clickql.As(
		clickql.Coalesce(instance.P("nickname"), instance.P("fallback_name")),
		"display_name",
	)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(table).
			Fields(instance.F("id")).
			Expressions(expr).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSubquery measures IN-subquery rendering.
func BenchmarkSubquery(b *testing.B) {
	instance := createBenchmarkInstance(b)
	users := instance.T("users")
	events := instance.T("events")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sub := clickql.Sub(
			clickql.Select(events).
				Fields(instance.F("user_id")).
				WhereField(instance.F("event_type"), clickql.EQ, instance.P("et")),
		)
		_, err := clickql.Select(users).
			Where(clickql.CSub(instance.F("id"), clickql.IN, sub)).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCompoundUnion measures UNION ALL rendering.
func BenchmarkCompoundUnion(b *testing.B) {
	instance := createBenchmarkInstance(b)
	users := instance.T("users")
	events := instance.T("events")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		first := clickql.Select(users).Fields(instance.F("id"))
		second := clickql.Select(events).Fields(instance.F("id"))
		_, err := clickql.UnionAll(first, second).Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkComplexQuery measures a query combining most clauses.
func BenchmarkComplexQuery(b *testing.B) {
	instance := createBenchmarkInstance(b)
	users := instance.T("users", "u")
	events := instance.T("events", "e")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := clickql.Select(users).
			Fields(instance.F("u.username")).
			Expressions(
				clickql.As(clickql.CountField(instance.F("e.id")), "event_count"),
			).
			InnerJoin(events, clickql.CF(instance.F("u.id"), clickql.EQ, instance.F("e.user_id"))).
			Where(clickql.C(instance.F("u.active"), clickql.EQ, instance.P("is_active"))).
			GroupBy(instance.F("u.username")).
			HavingAgg(clickql.HavingSum(instance.F("e.duration_ms"), clickql.GT, instance.P("min_duration"))).
			OrderBy(instance.F("u.username"), clickql.ASC).
			Limit(10).
			Render(clickhouse.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFieldCreation measures validated field construction.
func BenchmarkFieldCreation(b *testing.B) {
	instance := createBenchmarkInstance(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = instance.F("username")
	}
}

// BenchmarkTableCreation measures validated table construction.
func BenchmarkTableCreation(b *testing.B) {
	instance := createBenchmarkInstance(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = instance.T("users", "u")
	}
}

// BenchmarkParamCreation measures validated param construction.
func BenchmarkParamCreation(b *testing.B) {
	instance := createBenchmarkInstance(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = instance.P("user_id")
	}
}

// BenchmarkConditionCreation measures condition construction.
func BenchmarkConditionCreation(b *testing.B) {
	instance := createBenchmarkInstance(b)
	f := instance.F("active")
	p := instance.P("is_active")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = clickql.C(f, clickql.EQ, p)
	}
}
