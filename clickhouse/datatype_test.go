package clickhouse

import (
	"errors"
	"testing"
)

func TestParseDataType_Simple(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"UInt64", KindUInt64},
		{"Int32", KindInt32},
		{"Float64", KindFloat64},
		{"String", KindString},
		{"Bool", KindBool},
		{"Date", KindDate},
		{"DateTime", KindDateTime},
		{"UUID", KindUUID},
		{"IPv4", KindIPv4},
	}

	for _, tt := range tests {
		dt, err := ParseDataType(tt.input)
		if err != nil {
			t.Errorf("ParseDataType(%q) error = %v", tt.input, err)
			continue
		}
		if dt.Kind != tt.kind {
			t.Errorf("ParseDataType(%q).Kind = %v, want %v", tt.input, dt.Kind, tt.kind)
		}
		if dt.Nullable {
			t.Errorf("ParseDataType(%q) unexpectedly nullable", tt.input)
		}
	}
}

func TestParseDataType_Nullable(t *testing.T) {
	dt, err := ParseDataType("Nullable(Int64)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if !dt.Nullable {
		t.Error("Expected nullable")
	}
	if dt.Kind != KindInt64 {
		t.Errorf("Kind = %v, want %v", dt.Kind, KindInt64)
	}
}

func TestParseDataType_LowCardinality(t *testing.T) {
	dt, err := ParseDataType("LowCardinality(String)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if !dt.LowCardinality {
		t.Error("Expected low cardinality")
	}
	if dt.Kind != KindString {
		t.Errorf("Kind = %v, want %v", dt.Kind, KindString)
	}
}

func TestParseDataType_LowCardinalityNullable(t *testing.T) {
	dt, err := ParseDataType("LowCardinality(Nullable(String))")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if !dt.LowCardinality || !dt.Nullable {
		t.Errorf("Expected both wrappers, got %+v", dt)
	}
}

func TestParseDataType_Decimal(t *testing.T) {
	dt, err := ParseDataType("Decimal(18, 4)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindDecimal {
		t.Errorf("Kind = %v, want %v", dt.Kind, KindDecimal)
	}
	if dt.Precision != 18 || dt.Scale != 4 {
		t.Errorf("Precision/Scale = %d/%d, want 18/4", dt.Precision, dt.Scale)
	}
}

func TestParseDataType_DateTime64(t *testing.T) {
	dt, err := ParseDataType("DateTime64(3)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindDateTime || dt.Precision != 3 {
		t.Errorf("Got %+v, want DateTime precision 3", dt)
	}
}

func TestParseDataType_DateTime64WithTimezone(t *testing.T) {
	dt, err := ParseDataType("DateTime64(6, 'UTC')")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindDateTime || dt.Precision != 6 {
		t.Errorf("Got %+v, want DateTime precision 6", dt)
	}
}

func TestParseDataType_DateTimeWithTimezone(t *testing.T) {
	dt, err := ParseDataType("DateTime('Europe/Berlin')")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindDateTime || dt.Precision != 0 {
		t.Errorf("Got %+v, want plain DateTime", dt)
	}
}

func TestParseDataType_FixedString(t *testing.T) {
	dt, err := ParseDataType("FixedString(16)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindFixedStr || dt.Precision != 16 {
		t.Errorf("Got %+v, want FixedString(16)", dt)
	}
}

func TestParseDataType_Enum(t *testing.T) {
	dt, err := ParseDataType("Enum8('a' = 1, 'b' = 2)")
	if err != nil {
		t.Fatalf("ParseDataType() error = %v", err)
	}
	if dt.Kind != KindString {
		t.Errorf("Kind = %v, want %v", dt.Kind, KindString)
	}
}

func TestParseDataType_Unsupported(t *testing.T) {
	_, err := ParseDataType("AggregateFunction(sum, UInt64)")
	if err == nil {
		t.Fatal("Expected error for unsupported type")
	}

	var unsupported ErrUnsupportedType
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected ErrUnsupportedType, got %T", err)
	}
}

func TestDataType_StringRoundTrip(t *testing.T) {
	inputs := []string{
		"UInt64",
		"Nullable(Int32)",
		"LowCardinality(String)",
		"LowCardinality(Nullable(String))",
		"Decimal(18, 4)",
		"DateTime64(3)",
		"FixedString(16)",
	}

	for _, input := range inputs {
		dt, err := ParseDataType(input)
		if err != nil {
			t.Errorf("ParseDataType(%q) error = %v", input, err)
			continue
		}
		if got := dt.String(); got != input {
			t.Errorf("String() = %q, want %q", got, input)
		}
	}
}
