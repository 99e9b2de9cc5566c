package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatValidator checks a raw reference value against a declared value
// format.
type FormatValidator func(value string) error

// formatValidators maps value-format tags to their validators. The tag is a
// free identifier; unknown tags validate as plain strings.
var formatValidators = map[string]FormatValidator{
	"string":     validateString,
	"uuid":       validateUUID,
	"duration":   validateDuration,
	"percentage": validatePercentage,
}

// ValidateFormat checks a value against a value-format tag. Unknown tags are
// treated as "string".
func ValidateFormat(format, value string) error {
	validator, ok := formatValidators[format]
	if !ok {
		validator = validateString
	}
	return validator(value)
}

func validateString(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("empty value")
	}
	return nil
}

func validateUUID(value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("not a valid UUID: %s", value)
	}
	return nil
}

func validateDuration(value string) error {
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("not a valid duration: %s", value)
	}
	return nil
}

func validatePercentage(value string) error {
	s := strings.TrimSuffix(value, "%")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a valid percentage: %s", value)
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("percentage out of range: %s", value)
	}
	return nil
}
