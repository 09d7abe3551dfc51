package normalizer

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Ticket Availability</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <noscript>Please enable JavaScript</noscript>
  <div id="content">
    <h1>  Upcoming Fixtures  </h1>

    <p>Marseille v Liverpool FC</p>
  </div>
  <footer>Contact us</footer>
</body>
</html>`

func TestNormalize_WholeDocument(t *testing.T) {
	tn := NewTextNormalizer(zerolog.Nop())

	result, err := tn.Normalize(samplePage, "")

	require.NoError(t, err)
	assert.Contains(t, result, "Upcoming Fixtures")
	assert.Contains(t, result, "Marseille v Liverpool FC")
	assert.Contains(t, result, "Contact us")
	assert.NotContains(t, result, "console.log")
	assert.NotContains(t, result, "color: red")
	assert.NotContains(t, result, "Please enable JavaScript")
}

func TestNormalize_SelectorScoped(t *testing.T) {
	tn := NewTextNormalizer(zerolog.Nop())

	result, err := tn.Normalize(samplePage, "#content")

	require.NoError(t, err)
	assert.Contains(t, result, "Upcoming Fixtures")
	assert.NotContains(t, result, "Contact us")
}

func TestNormalize_SelectorMissingFallsBack(t *testing.T) {
	tn := NewTextNormalizer(zerolog.Nop())

	result, err := tn.Normalize(samplePage, "#does-not-exist")

	require.NoError(t, err)
	assert.Contains(t, result, "Contact us")
}

func TestNormalize_LineShape(t *testing.T) {
	tn := NewTextNormalizer(zerolog.Nop())

	result, err := tn.Normalize(samplePage, "")
	require.NoError(t, err)

	for _, line := range strings.Split(result, "\n") {
		assert.NotEmpty(t, line)
		assert.Equal(t, strings.TrimSpace(line), line)
	}
}

func TestNormalize_EmptyMarkup(t *testing.T) {
	tn := NewTextNormalizer(zerolog.Nop())

	result, err := tn.Normalize("", "")

	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestCollapseLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "blank lines dropped",
			input:    "one\n\n\ntwo\n",
			expected: "one\ntwo",
		},
		{
			name:     "lines trimmed",
			input:    "  padded  \n\ttabbed\t",
			expected: "padded\ntabbed",
		},
		{
			name:     "whitespace only",
			input:    " \n\t\n  ",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseLines(tt.input))
		})
	}
}

func TestCollapseLines_Idempotent(t *testing.T) {
	once := CollapseLines("  a \n\n b\n\n\n c  ")

	assert.Equal(t, once, CollapseLines(once))
}
