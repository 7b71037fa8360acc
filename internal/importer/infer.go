package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DataType classifies a field's values as observed in the input.
type DataType string

const (
	TypeText    DataType = "Text"
	TypeDate    DataType = "Date"
	TypeNumber  DataType = "Number"
	TypeBoolean DataType = "Boolean"
	TypeList    DataType = "List"
	TypeUnknown DataType = "Unknown"
)

const (
	// maxSampleValues caps the stringified samples kept per field.
	maxSampleValues = 3

	// maxSampleLength is the display cap for stringified sample values.
	maxSampleLength = 30
)

// datePattern matches a 4-digit-year ISO date. A match is only treated as a
// date if it also parses as a real calendar date (rejects 2024-13-40).
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func isDateString(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// inferType maps a single decoded JSON value to a DataType. Objects and nulls
// are Unknown; a later non-Unknown sighting may upgrade the field's type.
func inferType(v any) DataType {
	switch val := v.(type) {
	case string:
		if isDateString(val) {
			return TypeDate
		}
		return TypeText
	case json.Number, float64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case []any:
		return TypeList
	default:
		return TypeUnknown
	}
}

// sampleValue projects a raw value into its display-sample form.
func sampleValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if r := []rune(val); len(r) > maxSampleLength {
			return string(r[:maxSampleLength-3]) + "..."
		}
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case []any:
		return "[...]"
	case map[string]any:
		return "{...}"
	default:
		s := fmt.Sprintf("%v", val)
		if r := []rune(s); len(r) > maxSampleLength {
			return string(r[:maxSampleLength])
		}
		return s
	}
}

// stringify converts a non-nil raw value into the form used for item IDs and
// names. Unlike sampleValue it never truncates.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
