package primitive

import (
	"errors"
	"fmt"
	"reflect"

	"fortio.org/safecast"
)

var ErrNotAssignable = errors.New("value is not assignable")

// Assign stores v into dst, which must be settable.
//
// An invalid v stores the zero value. Pointer levels are added or removed
// as needed, named scalars are converted to and from their underlying kind,
// and numbers are converted between kinds only when the value survives the
// conversion unchanged.
func Assign(dst, v reflect.Value) error {
	if !v.IsValid() {
		dst.SetZero()
		return nil
	}

	dt := dst.Type()
	if v.Type().AssignableTo(dt) {
		dst.Set(v)
		return nil
	}

	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			dst.SetZero()
			return nil
		}
		if v.Kind() == reflect.Interface || dt.Kind() != reflect.Ptr {
			return Assign(dst, v.Elem())
		}
	}

	if dt.Kind() == reflect.Ptr {
		p := reflect.New(dt.Elem())
		if err := Assign(p.Elem(), v); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}

	if v.Kind() == dt.Kind() && v.Type().ConvertibleTo(dt) {
		dst.Set(v.Convert(dt))
		return nil
	}

	if isNumeric(v.Kind()) && isNumeric(dt.Kind()) {
		n, err := convertNumber(dt, v)
		if err != nil {
			return fmt.Errorf("%w: %s to %s: %w", ErrNotAssignable, v.Type(), dt, err)
		}
		dst.Set(n)
		return nil
	}

	return fmt.Errorf("%w: %s to %s", ErrNotAssignable, v.Type(), dt)
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || k == reflect.Float32 || k == reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
}

func convertNumber(t reflect.Type, v reflect.Value) (reflect.Value, error) {
	switch {
	case isSigned(v.Kind()):
		return fromInteger(t, v.Int())
	case isUnsigned(v.Kind()):
		return fromInteger(t, v.Uint())
	default:
		return fromFloat(t, v.Float())
	}
}

func fromInteger[In safecast.Integer](t reflect.Type, n In) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var err error
	switch t.Kind() {
	case reflect.Int:
		err = setInt(out, safecast.Conv[int, In], n)
	case reflect.Int8:
		err = setInt(out, safecast.Conv[int8, In], n)
	case reflect.Int16:
		err = setInt(out, safecast.Conv[int16, In], n)
	case reflect.Int32:
		err = setInt(out, safecast.Conv[int32, In], n)
	case reflect.Int64:
		err = setInt(out, safecast.Conv[int64, In], n)
	case reflect.Uint:
		err = setUint(out, safecast.Conv[uint, In], n)
	case reflect.Uint8:
		err = setUint(out, safecast.Conv[uint8, In], n)
	case reflect.Uint16:
		err = setUint(out, safecast.Conv[uint16, In], n)
	case reflect.Uint32:
		err = setUint(out, safecast.Conv[uint32, In], n)
	case reflect.Uint64:
		err = setUint(out, safecast.Conv[uint64, In], n)
	case reflect.Uintptr:
		err = setUint(out, safecast.Conv[uintptr, In], n)
	case reflect.Float32:
		err = setFloat(out, safecast.Convert[float32, In], n)
	case reflect.Float64:
		err = setFloat(out, safecast.Convert[float64, In], n)
	default:
		err = ErrNotAssignable
	}

	return out, err
}

func fromFloat(t reflect.Type, n float64) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var err error
	switch t.Kind() {
	case reflect.Int:
		err = setInt(out, safecast.Convert[int, float64], n)
	case reflect.Int8:
		err = setInt(out, safecast.Convert[int8, float64], n)
	case reflect.Int16:
		err = setInt(out, safecast.Convert[int16, float64], n)
	case reflect.Int32:
		err = setInt(out, safecast.Convert[int32, float64], n)
	case reflect.Int64:
		err = setInt(out, safecast.Convert[int64, float64], n)
	case reflect.Uint:
		err = setUint(out, safecast.Convert[uint, float64], n)
	case reflect.Uint8:
		err = setUint(out, safecast.Convert[uint8, float64], n)
	case reflect.Uint16:
		err = setUint(out, safecast.Convert[uint16, float64], n)
	case reflect.Uint32:
		err = setUint(out, safecast.Convert[uint32, float64], n)
	case reflect.Uint64:
		err = setUint(out, safecast.Convert[uint64, float64], n)
	case reflect.Uintptr:
		err = setUint(out, safecast.Convert[uintptr, float64], n)
	case reflect.Float32:
		err = setFloat(out, safecast.Convert[float32, float64], n)
	case reflect.Float64:
		out.SetFloat(n)
	default:
		err = ErrNotAssignable
	}

	return out, err
}

func setInt[Out int | int8 | int16 | int32 | int64, In any](out reflect.Value, conv func(In) (Out, error), n In) error {
	c, err := conv(n)
	if err != nil {
		return err
	}
	out.SetInt(int64(c))

	return nil
}

func setUint[Out uint | uint8 | uint16 | uint32 | uint64 | uintptr, In any](out reflect.Value, conv func(In) (Out, error), n In) error {
	c, err := conv(n)
	if err != nil {
		return err
	}
	out.SetUint(uint64(c))

	return nil
}

func setFloat[Out float32 | float64, In any](out reflect.Value, conv func(In) (Out, error), n In) error {
	c, err := conv(n)
	if err != nil {
		return err
	}
	out.SetFloat(float64(c))

	return nil
}
