package loader

import (
	"fmt"
)

// fieldString converts a decoded record field. Absent fields are "";
// anything other than a string is an error rather than a coerced value.
func fieldString(field string, v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("%s must be a string, got %T", field, v)
}

// fieldStrings converts a field that may be one string or a list of them.
func fieldStrings(field string, v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", field, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must be a string or a list of strings, got %T", field, v)
}
