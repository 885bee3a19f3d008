package post

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBody(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantNodes int
		wantText  string
		wantErr   error
	}{
		{"empty", "   ", 0, "", nil},
		{"plain text splits on blank lines", "Hello world.\n\n  \nSecond one.\r\n\r\nThird", 3, "Hello world. Second one. Third", nil},
		{"single line", "just text", 1, "just text", nil},
		{"legacy editor array", `[{"type":"paragraph","children":[{"text":"Hi "},{"text":"there","bold":true}]}]`, 1, "Hi  there", nil},
		{"canonical document", `{"version":1,"nodes":[{"type":"heading","children":[{"text":"Title"}]}]}`, 1, "Title", nil},
		{"document without version", `{"nodes":[]}`, 0, "", nil},
		{"document with null nodes", `{"version":1,"nodes":null}`, 0, "", ErrInvalidBody},
		{"future version", `{"version":2,"nodes":[]}`, 0, "", ErrInvalidBody},
		{"json object of wrong shape", `{"title":"x"}`, 0, "", ErrInvalidBody},
		{"json object with wrong types", `{"version":"one","nodes":[]}`, 0, "", ErrInvalidBody},
		{"broken json object is text", `{"version":1`, 1, `{"version":1`, nil},
		{"brace but not json", "{draft} notes about Go generics", 1, "{draft} notes about Go generics", nil},
		{"bracket but not json", "[draft] my notes", 1, "[draft] my notes", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBody(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, BodyVersion, doc.Version)
			assert.Len(t, doc.Nodes, tt.wantNodes)
			assert.Equal(t, tt.wantText, doc.PlainText())
		})
	}
}

func TestDocument_MarshalsCanonicalShape(t *testing.T) {
	doc, err := ParseBody("Hello")
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"nodes":[{"type":"paragraph","children":[{"text":"Hello"}]}]}`, string(out))

	empty, err := ParseBody("")
	require.NoError(t, err)
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"nodes":[]}`, string(out))
}

func TestParseBody_RoundTripsCanonical(t *testing.T) {
	first, err := ParseBody("One\n\nTwo")
	require.NoError(t, err)
	raw, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := ParseBody(string(raw))
	require.NoError(t, err)
	assert.Equal(t, first.PlainText(), second.PlainText())
	assert.Len(t, second.Nodes, 2)
}
