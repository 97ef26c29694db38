package spec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validJSON = `{"openapi":"3.0.0","info":{"title":"petstore","version":"1.0.0"},"paths":{}}`

const validYAML = `openapi: 3.0.0
info:
  title: petstore
  version: 1.0.0
paths: {}
`

func TestSniffFormat(t *testing.T) {
	require.Equal(t, FormatJSON, SniffFormat("api.json", ""))
	require.Equal(t, FormatYAML, SniffFormat("api.yaml", ""))
	require.Equal(t, FormatYAML, SniffFormat("API.YML", ""))
	// extension wins over content type
	require.Equal(t, FormatJSON, SniffFormat("api.json", "text/yaml"))
	require.Equal(t, FormatJSON, SniffFormat("", "application/json"))
	require.Equal(t, FormatYAML, SniffFormat("", "application/x-yaml"))
	require.Equal(t, Format(""), SniffFormat("api.txt", "text/plain"))
}

func TestParseJSON(t *testing.T) {
	doc, format, err := Parse([]byte(validJSON), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)
	require.Equal(t, "3.0.0", doc["openapi"])
}

func TestParseYAML(t *testing.T) {
	doc, format, err := Parse([]byte(validYAML), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "petstore", info["title"])
}

func TestParseWithoutHint(t *testing.T) {
	doc, format, err := Parse([]byte(validJSON), "")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)
	require.NotNil(t, doc)

	doc, format, err = Parse([]byte(validYAML), "")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)
	require.NotNil(t, doc)
}

func TestParseMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte(`{"a":`),
		[]byte(`[1, 2, 3]`),
		[]byte("\t- just\n- a\n- list\n"),
	}
	for _, data := range cases {
		_, _, err := Parse(data, "")
		require.ErrorIs(t, err, ErrMalformedDocument, "input %q", data)
	}

	// a hinted format does not fall back to the other decoder
	_, _, err := Parse([]byte(validYAML), FormatJSON)
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("   \n\t ")} {
		_, _, err := Parse(data, "")
		require.ErrorIs(t, err, ErrEmptyDocument)
	}
}

func TestValidateOpenAPI(t *testing.T) {
	require.NoError(t, ValidateOpenAPI(map[string]any{"openapi": "3.1.0", "info": map[string]any{}}))
	require.NoError(t, ValidateOpenAPI(map[string]any{"swagger": "2.0", "info": map[string]any{}}))

	err := ValidateOpenAPI(map[string]any{"info": map[string]any{}})
	require.ErrorIs(t, err, ErrNotOpenAPI)
	err = ValidateOpenAPI(map[string]any{"openapi": "3.0.0"})
	require.ErrorIs(t, err, ErrNotOpenAPI)
}

func TestCanonicalJSONRoundTrip(t *testing.T) {
	doc, _, err := Parse([]byte(validYAML), FormatYAML)
	require.NoError(t, err)
	out, err := CanonicalJSON(doc)
	require.NoError(t, err)

	reparsed, format, err := Parse([]byte(out), "")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)
	require.Equal(t, doc, reparsed)
}
