package types

import "strings"

type field struct {
	column string
	value  *string
}

func presentFields(fields ...field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != nil {
			names = append(names, f.column)
		}
	}
	return names
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func blankToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
