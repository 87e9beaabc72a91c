package catalog

import (
	"fmt"

	"github.com/roach88/woql/internal/ir"
)

// marshalParams encodes parameter names as a canonical JSON array. A nil
// slice encodes as [] so the column default and explicit saves agree.
func marshalParams(params []string) (string, error) {
	arr := make(ir.IRArray, len(params))
	for i, p := range params {
		arr[i] = ir.IRString(p)
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

func unmarshalParams(data string) ([]string, error) {
	val, err := ir.UnmarshalIRValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	arr, ok := val.(ir.IRArray)
	if !ok {
		return nil, fmt.Errorf("unmarshal params: expected array, got %T", val)
	}
	params := make([]string, 0, len(arr))
	for i, elem := range arr {
		s, ok := elem.(ir.IRString)
		if !ok {
			return nil, fmt.Errorf("unmarshal params: element %d is %T, not a string", i, elem)
		}
		params = append(params, string(s))
	}
	return params, nil
}

func unmarshalDocument(data string) (ir.IRObject, error) {
	val, err := ir.UnmarshalIRValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	obj, ok := val.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("unmarshal document: expected object, got %T", val)
	}
	return obj, nil
}
