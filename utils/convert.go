package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

func ToString(i interface{}, defaultVal string) string {
	switch value := i.(type) {
	case nil:
		return defaultVal
	case string:
		return value
	case []byte:
		return string(value)
	case int:
		return strconv.Itoa(value)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return value.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// ParseInt64 converts i to int64. Fractional, overflowing and non numeric values are errors.
func ParseInt64(i interface{}) (int64, error) {
	switch value := i.(type) {
	case int:
		return int64(value), nil
	case int8:
		return int64(value), nil
	case int16:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint8:
		return int64(value), nil
	case uint16:
		return int64(value), nil
	case uint32:
		return int64(value), nil
	case uint:
		if uint64(value) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", value)
		}
		return int64(value), nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", value)
		}
		return int64(value), nil
	case float32:
		return floatToInt64(float64(value))
	case float64:
		return floatToInt64(value)
	case string:
		return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(value)), 10, 64)
	}
	return 0, fmt.Errorf("unsupported type %T for int64", i)
}

func floatToInt64(v float64) (int64, error) {
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v is not an int64", v)
	}
	return int64(v), nil
}

// ParseFloat64 converts i to float64.
func ParseFloat64(i interface{}) (float64, error) {
	switch value := i.(type) {
	case int:
		return float64(value), nil
	case int32:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case uint32:
		return float64(value), nil
	case uint64:
		return float64(value), nil
	case float32:
		return float64(value), nil
	case float64:
		return value, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(value), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(value)), 64)
	}
	return 0, fmt.Errorf("unsupported type %T for float64", i)
}

// ParseBool converts i to bool. Integers must be 0 or 1.
func ParseBool(i interface{}) (bool, error) {
	switch value := i.(type) {
	case bool:
		return value, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(value))
	case []byte:
		return strconv.ParseBool(strings.TrimSpace(string(value)))
	case int, int8, int32, int64, uint8:
		v, _ := ParseInt64(value)
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, fmt.Errorf("value %d is not a bool", v)
	}
	return false, fmt.Errorf("unsupported type %T for bool", i)
}
