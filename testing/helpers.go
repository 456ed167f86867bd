// Package testing provides test utilities for clickql.
package testing

import (
	"strings"
	"testing"

	"github.com/zoobzio/clickql"
	"github.com/zoobzio/dbml"
)

// TestInstance creates a fully-featured ClickQL instance for testing.
// Includes events, users, orders, products, and page_views tables with
// ClickHouse column types.
func TestInstance(t *testing.T) *clickql.ClickQL {
	t.Helper()

	project := dbml.NewProject("test")

	// Events table, the typical wide fact table
	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "UInt64"))
	events.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	events.AddColumn(dbml.NewColumn("event_type", "LowCardinality(String)"))
	events.AddColumn(dbml.NewColumn("timestamp", "DateTime64(3)"))
	events.AddColumn(dbml.NewColumn("payload", "String"))
	events.AddColumn(dbml.NewColumn("duration_ms", "Nullable(UInt32)"))
	project.AddTable(events)

	// Users table
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "UInt64"))
	users.AddColumn(dbml.NewColumn("username", "String"))
	users.AddColumn(dbml.NewColumn("email", "String"))
	users.AddColumn(dbml.NewColumn("age", "Nullable(UInt8)"))
	users.AddColumn(dbml.NewColumn("active", "Bool"))
	users.AddColumn(dbml.NewColumn("created_at", "DateTime"))
	project.AddTable(users)

	// Orders table
	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "UInt64"))
	orders.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	orders.AddColumn(dbml.NewColumn("total", "Decimal(18, 4)"))
	orders.AddColumn(dbml.NewColumn("status", "LowCardinality(String)"))
	orders.AddColumn(dbml.NewColumn("created_at", "DateTime"))
	project.AddTable(orders)

	// Products table
	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "UInt64"))
	products.AddColumn(dbml.NewColumn("name", "String"))
	products.AddColumn(dbml.NewColumn("price", "Decimal(18, 4)"))
	products.AddColumn(dbml.NewColumn("category", "LowCardinality(String)"))
	products.AddColumn(dbml.NewColumn("stock", "Int32"))
	project.AddTable(products)

	// Page views table
	pageViews := dbml.NewTable("page_views")
	pageViews.AddColumn(dbml.NewColumn("id", "UInt64"))
	pageViews.AddColumn(dbml.NewColumn("user_id", "UInt64"))
	pageViews.AddColumn(dbml.NewColumn("url", "String"))
	pageViews.AddColumn(dbml.NewColumn("referrer", "Nullable(String)"))
	pageViews.AddColumn(dbml.NewColumn("viewed_at", "DateTime"))
	project.AddTable(pageViews)

	instance, err := clickql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test instance: %v", err)
	}
	return instance
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks that the required params match expected values.
func AssertParams(t *testing.T, expected, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}

	expectedMap := make(map[string]bool)
	for _, p := range expected {
		expectedMap[p] = true
	}

	for _, p := range actual {
		if !expectedMap[p] {
			t.Errorf("Unexpected param: %s\nExpected: %v\nActual: %v", p, expected, actual)
		}
	}
}

// AssertContainsParam checks that a specific param is in the list.
func AssertContainsParam(t *testing.T, params []string, param string) {
	t.Helper()
	for _, p := range params {
		if p == param {
			return
		}
	}
	t.Errorf("Expected param %q not found in %v", param, params)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
