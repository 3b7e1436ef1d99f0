package script

import (
	"fmt"
	"strconv"
)

// Parameter extraction helpers for step maps. Values come from YAML (int,
// float64, string, bool, []interface{}) or from JSON tool arguments (float64
// for every number).

func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that YAML may parse as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	n, ok := toInt64(params[key])
	if !ok {
		return defaultVal
	}
	return int(n)
}

func Int64Param(params map[string]interface{}, key string, defaultVal int64) int64 {
	n, ok := toInt64(params[key])
	if !ok {
		return defaultVal
	}
	return n
}

func FloatParam(params map[string]interface{}, key string, defaultVal float64) float64 {
	f, ok := toFloat(params[key])
	if !ok {
		return defaultVal
	}
	return f
}

func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// HasParam reports whether key is present at all.
func HasParam(params map[string]interface{}, key string) bool {
	_, ok := params[key]
	return ok
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toList(v interface{}) ([]interface{}, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	return list, nil
}

func toInt64s(v interface{}) ([]int64, error) {
	list, err := toList(v)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(list))
	for i, item := range list {
		n, ok := toInt64(item)
		if !ok {
			return nil, fmt.Errorf("item %d: expected an integer, got %T", i, item)
		}
		out[i] = n
	}
	return out, nil
}

func toFloats(v interface{}) ([]float64, error) {
	list, err := toList(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(list))
	for i, item := range list {
		f, ok := toFloat(item)
		if !ok {
			return nil, fmt.Errorf("item %d: expected a number, got %T", i, item)
		}
		out[i] = f
	}
	return out, nil
}

func toBytes(v interface{}) ([]byte, error) {
	ints, err := toInt64s(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ints))
	for i, n := range ints {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("item %d: %d does not fit in a byte", i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

func toFloat32s(v interface{}) ([]float32, error) {
	fs, err := toFloats(v)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(fs))
	for i, f := range fs {
		out[i] = float32(f)
	}
	return out, nil
}
