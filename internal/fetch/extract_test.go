package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarker = "var ytInitialData = "

type payload struct {
	Name  string `json:"name"`
	Items []int  `json:"items"`
}

func TestEmbeddedJSON(t *testing.T) {
	html := `<html><head>
		<script>window.other = 1;</script>
		<script>var ytInitialData = {"name":"a;b","items":[1,2]};var next = {};</script>
	</head><body></body></html>`

	var got payload
	require.NoError(t, EmbeddedJSON("http://page", html, testMarker, ";", &got))
	assert.Equal(t, "a;b", got.Name)
	assert.Equal(t, []int{1, 2}, got.Items)
}

func TestEmbeddedJSON_WhitespaceBeforeTerminator(t *testing.T) {
	html := "<script>var ytInitialData = {\"name\":\"x\"}\n ;</script>"

	var got payload
	require.NoError(t, EmbeddedJSON("http://page", html, testMarker, ";", &got))
	assert.Equal(t, "x", got.Name)
}

func TestEmbeddedJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		html string
		want error
	}{
		{"missing marker", `<script>var somethingElse = {};</script>`, ErrExtraction},
		{"marker outside script", `<div>var ytInitialData = {};</div>`, ErrExtraction},
		{"malformed json", `<script>var ytInitialData = {"name": ;</script>`, ErrUpstreamParse},
		{"missing terminator", `<script>var ytInitialData = {"name":"x"}</script>`, ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := EmbeddedJSON("http://page", tt.html, testMarker, ";", &got)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
