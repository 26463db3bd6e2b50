package anonym

import "fmt"

// entityName expands a placeholder template into "<prefix> <id>", falling
// back to "<kind> <id>" when no prefix is configured for the entity kind.
func entityName(prefix, kind string, id int) string {
	if prefix == "" {
		prefix = kind
	}
	return fmt.Sprintf("%s %d", prefix, id)
}

// orDefault returns the template value, or the fallback when it is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
