package twitter

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// Accessors over loosely typed payloads. A missing field and a field of the
// wrong type look the same to the caller: ok is false.

func anyObject(v jsoniter.Any, path ...interface{}) (map[string]jsoniter.Any, bool) {
	f := v.Get(path...)
	if f.ValueType() != jsoniter.ObjectValue {
		return nil, false
	}

	var m map[string]jsoniter.Any
	f.ToVal(&m)
	if m == nil {
		m = map[string]jsoniter.Any{}
	}
	return m, true
}

func anyArray(v jsoniter.Any, path ...interface{}) ([]jsoniter.Any, bool) {
	f := v.Get(path...)
	if f.ValueType() != jsoniter.ArrayValue {
		return nil, false
	}

	var a []jsoniter.Any
	f.ToVal(&a)
	return a, true
}

func anyString(v jsoniter.Any, path ...interface{}) (string, bool) {
	f := v.Get(path...)
	if f.ValueType() != jsoniter.StringValue {
		return "", false
	}
	return f.ToString(), true
}

func anyBool(v jsoniter.Any, path ...interface{}) (bool, bool) {
	f := v.Get(path...)
	if f.ValueType() != jsoniter.BoolValue {
		return false, false
	}
	return f.ToBool(), true
}

// anyInt accepts integral numbers only.
func anyInt(v jsoniter.Any, path ...interface{}) (int, bool) {
	f := v.Get(path...)
	if f.ValueType() != jsoniter.NumberValue {
		return 0, false
	}
	i, err := cast.ToIntE(f.ToString())
	if err != nil {
		return 0, false
	}
	return i, true
}

func optString(v jsoniter.Any, path ...interface{}) *string {
	if s, ok := anyString(v, path...); ok {
		return &s
	}
	return nil
}

func optBool(v jsoniter.Any, path ...interface{}) *bool {
	if b, ok := anyBool(v, path...); ok {
		return &b
	}
	return nil
}

func optInt(v jsoniter.Any, path ...interface{}) *int {
	if i, ok := anyInt(v, path...); ok {
		return &i
	}
	return nil
}
