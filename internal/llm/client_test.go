package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("{\"name\":"), genai.Text("\"Jane\"}")},
				},
			},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane"}`, text)
}

func TestExtractTextFromResponseMalformedShapes(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"No candidates", &genai.GenerateContentResponse{}},
		{"Nil content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		}},
		{"Empty parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			require.Error(t, err)

			var malformed *UpstreamMalformedError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
}

func TestConfigWithModel(t *testing.T) {
	cfg := DefaultConfig().WithModel("gemini-2.5-pro")
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, DefaultModel, DefaultConfig().Model, "original config is unchanged")
}
