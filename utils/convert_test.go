package utils

import (
	"math"
	"testing"

	"fortio.org/assert"
	"github.com/logicalclocks/featurestore-go-sdk/constants"
)

func TestConvertValue(t *testing.T) {
	testcases := []struct {
		value  interface{}
		fsType constants.FSType
		expect interface{}
	}{
		{value: []byte("42"), fsType: constants.FS_INT64, expect: int64(42)},
		{value: "7", fsType: constants.FS_INT32, expect: int32(7)},
		{value: float64(9), fsType: constants.FS_INT64, expect: int64(9)},
		{value: int64(3), fsType: constants.FS_DOUBLE, expect: float64(3)},
		{value: "1.5", fsType: constants.FS_FLOAT, expect: float32(1.5)},
		{value: "true", fsType: constants.FS_BOOLEAN, expect: true},
		{value: int64(0), fsType: constants.FS_BOOLEAN, expect: false},
		{value: int64(12), fsType: constants.FS_STRING, expect: "12"},
		{value: []byte("12345678901234567890.123456789"), fsType: constants.ParseFSType("decimal"), expect: "12345678901234567890.123456789"},
		{value: nil, fsType: constants.FS_STRING, expect: nil},
	}

	for _, tcase := range testcases {
		value, err := ConvertValue(tcase.value, tcase.fsType)
		assert.NoError(t, err)
		assert.Equal(t, tcase.expect, value)
	}
}

func TestConvertValueError(t *testing.T) {
	testcases := []struct {
		value  interface{}
		fsType constants.FSType
	}{
		{value: "12.5", fsType: constants.FS_INT64},
		{value: float64(12.5), fsType: constants.FS_INT64},
		{value: "abc", fsType: constants.FS_INT32},
		{value: int64(1 << 40), fsType: constants.FS_INT32},
		{value: uint64(math.MaxUint64), fsType: constants.FS_INT64},
		{value: "1e300", fsType: constants.FS_FLOAT},
		{value: "n/a", fsType: constants.FS_DOUBLE},
		{value: "maybe", fsType: constants.FS_BOOLEAN},
		{value: int64(2), fsType: constants.FS_BOOLEAN},
		{value: struct{}{}, fsType: constants.FS_INT64},
	}

	for _, tcase := range testcases {
		value, err := ConvertValue(tcase.value, tcase.fsType)
		assert.Error(t, err)
		assert.True(t, value == nil)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "x", ToString(nil, "x"))
	assert.Equal(t, "2.5", ToString(float64(2.5), ""))
	assert.Equal(t, "abc", ToString([]byte("abc"), ""))
}

func TestParseFSType(t *testing.T) {
	assert.Equal(t, constants.FS_INT64, constants.ParseFSType("bigint"))
	assert.Equal(t, constants.FS_INT32, constants.ParseFSType("INT"))
	assert.Equal(t, constants.FS_DOUBLE, constants.ParseFSType("double"))
	assert.Equal(t, constants.FS_STRING, constants.ParseFSType("DECIMAL"))
	assert.Equal(t, constants.FS_STRING, constants.ParseFSType("array<string>"))
}
