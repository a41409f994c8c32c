package primitive

import "reflect"

// Conversion classifies how Assign treats values of one type stored into
// another.
type Conversion int

const (
	ConversionNone          Conversion = iota // Assign always fails
	ConversionDirect                          // assignable, or a conversion within one kind
	ConversionSafeNumber                      // int, uint, float without precision loss
	ConversionCheckedNumber                   // int, uint, float; fails when the value does not fit
)

func (c Conversion) String() string {
	switch c {
	case ConversionNone:
		return "none"
	case ConversionDirect:
		return "direct"
	case ConversionSafeNumber:
		return "safe number"
	case ConversionCheckedNumber:
		return "checked number"
	default:
		return "unknown"
	}
}

// Lossless reports whether every value survives the conversion.
func (c Conversion) Lossless() bool {
	return c == ConversionDirect || c == ConversionSafeNumber
}

// ConversionPair is an ordered (from, to) pair of number kinds.
type ConversionPair struct {
	From, To KindEnum
}

var safeNumbers = safeNumberConversionPairs()

// Classify predicts the outcome of Assign for a value declared as from stored
// into a destination declared as to. Pointer levels are ignored on both sides.
func Classify(from, to reflect.Type) Conversion {
	from, to = deref(from), deref(to)
	if from == nil || to == nil {
		return ConversionNone
	}

	switch {
	case from.AssignableTo(to):
		return ConversionDirect
	case from.Kind() == to.Kind() && from.ConvertibleTo(to):
		return ConversionDirect
	case !isNumeric(from.Kind()) || !isNumeric(to.Kind()):
		return ConversionNone
	}

	if _, ok := safeNumbers[ConversionPair{numberKind(from.Kind()), numberKind(to.Kind())}]; ok {
		return ConversionSafeNumber
	}

	return ConversionCheckedNumber
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

// numberKind maps a numeric reflect.Kind to its KindEnum, ignoring names.
func numberKind(k reflect.Kind) KindEnum {
	switch k {
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint, reflect.Uintptr:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return 0
	}
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt8}:    {},
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt16}:   {}, // int16 omitting narrowing to int8
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt32}:   {}, // int32 omitting narrowing to int8/16
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindInt64, KindInt64}: {}, // int64 is the widest signed integer type

		{KindUint, KindUint}:   {}, // uint can be any wide from 32 upto 64
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {}, // uint8 can be safely converted to any unsigned int
		{KindUint8, KindUint8}:   {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {}, // also uint8 can be converted to any wider signed int
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint16}:  {}, // uint16 omitting narrowing to uint8
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {}, // also uint16 can be converted to any wider signed int
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint32}:  {},
		{KindUint32, KindUint64}:  {}, // uint32 omitting narrowing to uint8/16
		{KindUint32, KindInt64}:   {}, // also only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {}, // uint32 is wider than float32 mantissa

		{KindUint64, KindUint64}: {}, // uint64 is the widest unsigned integer type

		{KindFloat32, KindFloat32}: {},
		{KindFloat32, KindFloat64}: {},

		{KindFloat64, KindFloat64}: {},
	}
}
