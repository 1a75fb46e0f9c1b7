package handler

import "fmt"

// Request body validation. Runs before any store call so an invalid
// payload never causes a write.

// requireStringFields checks that every named field is present and a
// non-empty string.
func requireStringFields(doc map[string]any, fields ...string) error {
	for _, field := range fields {
		v, ok := doc[field]
		if !ok {
			return fmt.Errorf("missing required field %q", field)
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string", field)
		}
		if s == "" {
			return fmt.Errorf("field %q must not be empty", field)
		}
	}
	return nil
}

// validateAvailability checks that an availability body maps day
// identifiers to string markers.
func validateAvailability(days map[string]any) error {
	if days == nil {
		return fmt.Errorf("availability body must be an object")
	}
	for day, marker := range days {
		if _, ok := marker.(string); !ok {
			return fmt.Errorf("availability for %q must be a string marker", day)
		}
	}
	return nil
}
