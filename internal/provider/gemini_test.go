package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) []byte {
	payload, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return payload
}

func TestGemini_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		text := "Here you go:\n" +
			`[{"categoryName": "Space", "words": ["rocket", "planet", "comet", "orbit", "star"]}]`
		w.Header().Set("Content-Type", "application/json")
		w.Write(geminiResponse(text))
	}))
	defer srv.Close()

	p := NewGemini(GeminiConfig{APIKey: "secret", Model: "gemini-1.5-flash", BaseURL: srv.URL})
	drafts, err := p.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Space", drafts[0].Name)
	assert.Equal(t, "gemini", drafts[0].Source)
	assert.Len(t, drafts[0].Words, 5)
}

func TestGemini_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGemini(GeminiConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), 1)
	assert.ErrorContains(t, err, "status 429")
}

func TestGemini_EmptyCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	p := NewGemini(GeminiConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), 1)
	assert.ErrorContains(t, err, "no candidate text")
}
