package clickhouse

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the dialect-independent classification of a column type.
type Kind string

const (
	KindBool      Kind = "bool"
	KindInt8      Kind = "int8"
	KindInt16     Kind = "int16"
	KindInt32     Kind = "int32"
	KindInt64     Kind = "int64"
	KindUInt8     Kind = "uint8"
	KindUInt16    Kind = "uint16"
	KindUInt32    Kind = "uint32"
	KindUInt64    Kind = "uint64"
	KindFloat32   Kind = "float32"
	KindFloat64   Kind = "float64"
	KindDecimal   Kind = "decimal"
	KindString    Kind = "string"
	KindFixedStr  Kind = "fixedstring"
	KindDate      Kind = "date"
	KindDateTime  Kind = "datetime"
	KindUUID      Kind = "uuid"
	KindIPv4      Kind = "ipv4"
	KindIPv6      Kind = "ipv6"
	KindPoint     Kind = "point"
	KindRing      Kind = "ring"
	KindPolygon   Kind = "polygon"
	KindMultiPoly Kind = "multipolygon"
)

// DataType describes a ClickHouse column type. Nullable and LowCardinality
// wrappers are carried as flags; the textual form round-trips through String.
type DataType struct {
	Kind           Kind
	Nullable       bool
	LowCardinality bool
	Precision      int // decimal precision, DateTime64 tick precision, FixedString length
	Scale          int // decimal scale
}

// ErrUnsupportedType indicates a column type with no known mapping.
type ErrUnsupportedType struct {
	Type string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported ClickHouse type: %s", e.Type)
}

// nameToKind maps the base type name to its kind.
var nameToKind = map[string]Kind{
	"Bool":         KindBool,
	"Int8":         KindInt8,
	"Int16":        KindInt16,
	"Int32":        KindInt32,
	"Int64":        KindInt64,
	"UInt8":        KindUInt8,
	"UInt16":       KindUInt16,
	"UInt32":       KindUInt32,
	"UInt64":       KindUInt64,
	"Float32":      KindFloat32,
	"Float64":      KindFloat64,
	"String":       KindString,
	"Date":         KindDate,
	"Date32":       KindDate,
	"DateTime":     KindDateTime,
	"UUID":         KindUUID,
	"IPv4":         KindIPv4,
	"IPv6":         KindIPv6,
	"Point":        KindPoint,
	"Ring":         KindRing,
	"Polygon":      KindPolygon,
	"MultiPolygon": KindMultiPoly,
}

// kindToName is the inverse mapping used by String. Kinds that fold
// multiple source names map back to the canonical one.
var kindToName = map[Kind]string{
	KindBool:      "Bool",
	KindInt8:      "Int8",
	KindInt16:     "Int16",
	KindInt32:     "Int32",
	KindInt64:     "Int64",
	KindUInt8:     "UInt8",
	KindUInt16:    "UInt16",
	KindUInt32:    "UInt32",
	KindUInt64:    "UInt64",
	KindFloat32:   "Float32",
	KindFloat64:   "Float64",
	KindString:    "String",
	KindDate:      "Date",
	KindDateTime:  "DateTime",
	KindUUID:      "UUID",
	KindIPv4:      "IPv4",
	KindIPv6:      "IPv6",
	KindPoint:     "Point",
	KindRing:      "Ring",
	KindPolygon:   "Polygon",
	KindMultiPoly: "MultiPolygon",
}

// ParseDataType parses the textual type of a DESCRIBE TABLE row, handling
// Nullable(T) and LowCardinality(T) wrappers and parameterized types like
// Decimal(p, s), DateTime64(n) and FixedString(n).
func ParseDataType(s string) (DataType, error) {
	var dt DataType
	name := strings.TrimSpace(s)

	// Unwrap modifiers; Nullable may appear inside LowCardinality
unwrap:
	for {
		switch {
		case strings.HasPrefix(name, "Nullable(") && strings.HasSuffix(name, ")"):
			dt.Nullable = true
			name = name[len("Nullable(") : len(name)-1]
		case strings.HasPrefix(name, "LowCardinality(") && strings.HasSuffix(name, ")"):
			dt.LowCardinality = true
			name = name[len("LowCardinality(") : len(name)-1]
		default:
			break unwrap
		}
	}

	if kind, ok := nameToKind[name]; ok {
		dt.Kind = kind
		return dt, nil
	}

	switch {
	case strings.HasPrefix(name, "Decimal(") && strings.HasSuffix(name, ")"):
		args := strings.Split(name[len("Decimal("):len(name)-1], ",")
		if len(args) != 2 {
			return DataType{}, ErrUnsupportedType{Type: s}
		}
		precision, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return DataType{}, ErrUnsupportedType{Type: s}
		}
		scale, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return DataType{}, ErrUnsupportedType{Type: s}
		}
		dt.Kind = KindDecimal
		dt.Precision = precision
		dt.Scale = scale
		return dt, nil

	case strings.HasPrefix(name, "DateTime64(") && strings.HasSuffix(name, ")"):
		// Timezone argument, if present, is dropped
		args := strings.SplitN(name[len("DateTime64("):len(name)-1], ",", 2)
		ticks, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return DataType{}, ErrUnsupportedType{Type: s}
		}
		dt.Kind = KindDateTime
		dt.Precision = ticks
		return dt, nil

	case strings.HasPrefix(name, "DateTime(") && strings.HasSuffix(name, ")"):
		// DateTime('UTC') and friends fold to plain DateTime
		dt.Kind = KindDateTime
		return dt, nil

	case strings.HasPrefix(name, "FixedString(") && strings.HasSuffix(name, ")"):
		length, err := strconv.Atoi(strings.TrimSpace(name[len("FixedString(") : len(name)-1]))
		if err != nil {
			return DataType{}, ErrUnsupportedType{Type: s}
		}
		dt.Kind = KindFixedStr
		dt.Precision = length
		return dt, nil

	case strings.HasPrefix(name, "Enum8(") || strings.HasPrefix(name, "Enum16("):
		// Enums come back from the driver as strings
		dt.Kind = KindString
		return dt, nil
	}

	return DataType{}, ErrUnsupportedType{Type: s}
}

// String renders the type back in ClickHouse's textual form.
func (dt DataType) String() string {
	var base string
	switch dt.Kind {
	case KindDecimal:
		base = fmt.Sprintf("Decimal(%d, %d)", dt.Precision, dt.Scale)
	case KindFixedStr:
		base = fmt.Sprintf("FixedString(%d)", dt.Precision)
	case KindDateTime:
		if dt.Precision > 0 {
			base = fmt.Sprintf("DateTime64(%d)", dt.Precision)
		} else {
			base = "DateTime"
		}
	default:
		base = kindToName[dt.Kind]
	}

	// Nullable nests inside LowCardinality, matching server DDL
	if dt.Nullable {
		base = "Nullable(" + base + ")"
	}
	if dt.LowCardinality {
		base = "LowCardinality(" + base + ")"
	}
	return base
}
