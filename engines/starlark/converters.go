package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

// toStarlarkDict converts a Go map into a Starlark dict. The returned dict is
// retained by the caller so values the expression assigns into it can be read
// back after evaluation.
func toStarlarkDict(input map[string]any) (*starlarkLib.Dict, error) {
	dict := starlarkLib.NewDict(len(input))
	for k, v := range input {
		starlarkVal, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("failed to convert value for key %q: %w", k, err)
		}
		if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
			return nil, fmt.Errorf("failed to set dict key %q: %w", k, err)
		}
	}
	return dict, nil
}

// toStarlarkValue converts a Go value to a Starlark value.
func toStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float32:
		return starlarkLib.Float(float64(val)), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = toStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]any:
		return toStarlarkDict(val)
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// fromStarlarkValue converts a Starlark value back to a plain Go value.
func fromStarlarkValue(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("int value %s overflows int64", v.String())
		}
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		list := make([]any, 0, v.Len())
		for i := range v.Len() {
			elem, err := fromStarlarkValue(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			list = append(list, elem)
		}
		return list, nil
	case *starlarkLib.Dict:
		dict := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			val, found, err := v.Get(k)
			if err != nil || !found {
				continue
			}
			kStr, ok := k.(starlarkLib.String)
			if !ok {
				kStr = starlarkLib.String(k.String())
			}
			vv, err := fromStarlarkValue(val)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			dict[string(kStr)] = vv
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %T", v)
	}
}
