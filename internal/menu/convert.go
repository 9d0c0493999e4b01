package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// Converter turns one configured option value into its command line tokens.
// A nil value means the option is unset and must produce no tokens, except
// for the executable converter which falls back to its default name.
// Converters are pure: deterministic and side effect free.
type Converter func(value any) ([]string, error)

// Executable returns a converter for the menu binary itself. An unset or
// falsy value emits the fallback name, anything else emits the value as-is.
func Executable(fallback string) Converter {
	return func(value any) ([]string, error) {
		if !truthy(value) {
			return []string{fallback}, nil
		}
		return []string{stringify(value)}, nil
	}
}

// Flag returns a converter for a boolean switch: truthy emits the bare flag,
// anything else emits nothing. Truthiness follows the loose convention: nil,
// false, numeric zero and the empty string are falsy, every other value
// (including non-empty strings) is truthy.
func Flag(flag string) Converter {
	return func(value any) ([]string, error) {
		if truthy(value) {
			return []string{flag}, nil
		}
		return nil, nil
	}
}

// IntFlag returns a converter emitting the flag followed by the value
// formatted as a base-10 integer. Only nil is treated as unset; zero is a
// legitimate value. Non-integer values produce a ConvertError.
func IntFlag(flag string) Converter {
	return func(value any) ([]string, error) {
		if value == nil {
			return nil, nil
		}
		n, err := toInt(value)
		if err != nil {
			return nil, &ConvertError{Value: value, Err: err}
		}
		return []string{flag, strconv.FormatInt(n, 10)}, nil
	}
}

// StringFlag returns a converter emitting the flag followed by the value
// stringified. Only nil is treated as unset.
func StringFlag(flag string) Converter {
	return func(value any) ([]string, error) {
		if value == nil {
			return nil, nil
		}
		return []string{flag, stringify(value)}, nil
	}
}

// FloatFlag returns a converter emitting the flag followed by the value
// formatted as a decimal with at least one fractional digit ("1.0", never
// "1"). Non-numeric values produce a ConvertError.
func FloatFlag(flag string) Converter {
	return func(value any) ([]string, error) {
		if value == nil {
			return nil, nil
		}
		f, err := toFloat(value)
		if err != nil {
			return nil, &ConvertError{Value: value, Err: err}
		}
		return []string{flag, formatFloat(f)}, nil
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func stringify(value any) string {
	return fmt.Sprintf("%v", value)
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid float literal %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value of type %T is not a float", value)
	}
}

// formatFloat renders f with at least one digit after the decimal point,
// matching the argv contract of the external tool ("1.0", not "1").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
