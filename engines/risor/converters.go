package risor

import (
	"errors"
	"fmt"

	risorObject "github.com/risor-io/risor/object"
)

// toRisorMap converts a Go map into a Risor map object. The returned *Map is
// handed to the VM as a global and retained by the caller, so values the
// script assigns into it can be read back after evaluation.
func toRisorMap(input map[string]any) (*risorObject.Map, error) {
	items := make(map[string]risorObject.Object, len(input))
	errz := make([]error, 0, len(input))
	for k, v := range input {
		obj, err := toRisorValue(v)
		if err != nil {
			errz = append(errz, fmt.Errorf("failed to convert value for key %q: %w", k, err))
			continue
		}
		items[k] = obj
	}
	if len(errz) > 0 {
		return nil, errors.Join(errz...)
	}
	return risorObject.NewMap(items), nil
}

// toRisorValue converts a Go value to a Risor object.
func toRisorValue(v any) (risorObject.Object, error) {
	if v == nil {
		return risorObject.Nil, nil
	}

	switch val := v.(type) {
	case bool:
		return risorObject.NewBool(val), nil
	case int:
		return risorObject.NewInt(int64(val)), nil
	case int32:
		return risorObject.NewInt(int64(val)), nil
	case int64:
		return risorObject.NewInt(val), nil
	case float32:
		return risorObject.NewFloat(float64(val)), nil
	case float64:
		return risorObject.NewFloat(val), nil
	case string:
		return risorObject.NewString(val), nil
	case []any:
		elements := make([]risorObject.Object, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = toRisorValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return risorObject.NewList(elements), nil
	case map[string]any:
		return toRisorMap(val)
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// fromRisorValue converts a Risor object back to a plain Go value.
func fromRisorValue(obj risorObject.Object) (any, error) {
	if obj == nil || obj == risorObject.Nil {
		return nil, nil
	}
	if errObj, ok := obj.(*risorObject.Error); ok {
		return nil, errors.New(errObj.Inspect())
	}
	return obj.Interface(), nil
}
