package binding

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// FlexID positive id that accepts a JSON number or a numeric string
type FlexID uint

// InvalidIDError a value that is not a usable id
type InvalidIDError struct {
	Raw string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q", e.Raw)
}

// UnmarshalJSON accepts 12, "12" and null
func (id *FlexID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		*id = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	parsed, ok := ParseID(raw)
	if !ok {
		return &InvalidIDError{Raw: raw}
	}
	*id = FlexID(parsed)
	return nil
}

// Uint plain value
func (id FlexID) Uint() uint {
	return uint(id)
}

// ParseID parses a positive integer id
func ParseID(raw string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
