package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tiktok-planner/domain/dto"
)

func TestCursor_ForwardedVerbatim(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantJSON  string
		wantQuery string
		wantNull  bool
	}{
		{"string", `{"nextCursor":"20"}`, `"20"`, "20", false},
		{"number", `{"nextCursor":36}`, `36`, "36", false},
		{"zero", `{"nextCursor":0}`, `0`, "0", false},
		{"null", `{"nextCursor":null}`, `null`, "", true},
		{"absent", `{}`, `null`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page dto.SearchPage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &page))
			assert.Equal(t, tt.wantNull, page.NextCursor.IsNull())
			assert.Equal(t, tt.wantQuery, page.NextCursor.QueryValue())

			out, err := json.Marshal(page.NextCursor)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(out))
		})
	}
}

func TestCursor_InvalidRawIsNull(t *testing.T) {
	assert.True(t, dto.NewCursor([]byte("{oops")).IsNull())
	assert.True(t, dto.NewCursor(nil).IsNull())
}

func TestStringCursor(t *testing.T) {
	c := dto.StringCursor("abc")
	assert.Equal(t, `"abc"`, c.String())
	assert.Equal(t, "abc", c.QueryValue())
}
