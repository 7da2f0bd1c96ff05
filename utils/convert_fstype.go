package utils

import (
	"fmt"
	"math"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

// ConvertValue converts a raw value read from a store to the go type of a feature type.
// A value that does not fit the type is an error, it is never zeroed or truncated.
func ConvertValue(i interface{}, t constants.FSType) (interface{}, error) {
	if i == nil {
		return nil, nil
	}
	switch t {
	case constants.FS_INT32:
		v, err := ParseInt64(i)
		if err != nil {
			return nil, err
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("value %d overflows int32", v)
		}
		return int32(v), nil
	case constants.FS_INT64:
		return ParseInt64(i)
	case constants.FS_FLOAT:
		v, err := ParseFloat64(i)
		if err != nil {
			return nil, err
		}
		if math.Abs(v) > math.MaxFloat32 && !math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %v overflows float32", v)
		}
		return float32(v), nil
	case constants.FS_DOUBLE:
		return ParseFloat64(i)
	case constants.FS_BOOLEAN:
		return ParseBool(i)
	case constants.FS_TIMESTAMP:
		return i, nil
	default:
		return ToString(i, ""), nil
	}
}
