package dto

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Cursor is an opaque pagination token. It keeps the exact JSON the provider
// sent (string, number or null) and is forwarded without interpretation.
type Cursor struct {
	raw json.RawMessage
}

// NewCursor wraps raw JSON. Empty or invalid input yields a null cursor.
func NewCursor(raw []byte) Cursor {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) || !json.Valid(raw) {
		return Cursor{}
	}
	return Cursor{raw: append(json.RawMessage(nil), raw...)}
}

// StringCursor builds a cursor holding a JSON string.
func StringCursor(s string) Cursor {
	raw, _ := json.Marshal(s)
	return Cursor{raw: raw}
}

// IsNull reports whether the provider sent no cursor.
func (c Cursor) IsNull() bool {
	return len(c.raw) == 0
}

// Raw returns the JSON text of the cursor, "null" when absent.
func (c Cursor) Raw() []byte {
	if c.IsNull() {
		return append([]byte(nil), jsonNull...)
	}
	return append([]byte(nil), c.raw...)
}

// QueryValue renders the cursor for the next page request: JSON strings are
// unquoted, any other value is sent as written. Null renders as "".
func (c Cursor) QueryValue() string {
	if c.IsNull() {
		return ""
	}
	if c.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(c.raw, &s); err == nil {
			return s
		}
	}
	return string(c.raw)
}

func (c Cursor) String() string {
	return string(c.Raw())
}

func (c Cursor) MarshalJSON() ([]byte, error) {
	return c.Raw(), nil
}

func (c *Cursor) UnmarshalJSON(data []byte) error {
	*c = NewCursor(data)
	return nil
}
