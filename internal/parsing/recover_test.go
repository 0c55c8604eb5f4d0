package parsing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-intake/internal/types"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"No fences", `{"a": 1}`, `{"a": 1}`},
		{"JSON fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"Bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"Fence with surrounding whitespace", "  \n```json\n{\"a\": 1}\n```  \n", `{"a": 1}`},
		{"Opening fence only", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"Language tag on own line", "```JSON5\n{\"a\": 1}\n```", `{"a": 1}`},
		{"Braces on fence line are content", "```{\"a\": 1}\n```", `{"a": 1}`},
		{"Plain text untouched", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestRecoverFenceTolerance(t *testing.T) {
	// All three framings of the same object must recover identically.
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"{\"a\":1}",
		"```\n{\"a\":1}\n```",
	}

	for _, input := range inputs {
		record, err := Recover(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, types.StructuredRecord{"a": float64(1)}, record)
	}
}

func TestRecoverRefusalReply(t *testing.T) {
	_, err := Recover("Sorry, I cannot help with that.")
	require.Error(t, err)

	var recovery *ParseRecoveryError
	require.True(t, errors.As(err, &recovery))
	assert.Equal(t, "Sorry, I cannot help with that.", recovery.Snippet)
}

func TestRecoverSnippetIsBounded(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 10_000)

	_, err := Recover(raw)
	require.Error(t, err)

	var recovery *ParseRecoveryError
	require.True(t, errors.As(err, &recovery))
	assert.Len(t, recovery.Snippet, snippetLimit)
	assert.True(t, strings.HasPrefix(raw, recovery.Snippet))
}

func TestRecoverNullReply(t *testing.T) {
	_, err := Recover("null")
	require.Error(t, err)

	var recovery *ParseRecoveryError
	assert.True(t, errors.As(err, &recovery))
}

func TestRecoverNonObjectReply(t *testing.T) {
	_, err := Recover(`["a", "b"]`)
	require.Error(t, err)

	var recovery *ParseRecoveryError
	assert.True(t, errors.As(err, &recovery))
}

func TestRecoverKeepsNestedStructure(t *testing.T) {
	raw := "```json\n{\"name\":\"Jane\",\"projects\":[{\"name\":\"etl\",\"description\":\"pipelines\"}]}\n```"

	record, err := Recover(raw)
	require.NoError(t, err)

	projects, ok := record["projects"].([]any)
	require.True(t, ok)
	require.Len(t, projects, 1)
	assert.Equal(t, "etl", projects[0].(map[string]any)["name"])
}
