package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

func TestGeminiGenerate(t *testing.T) {
	t.Run("returns the first candidate's text", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody geminiRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_ = json.NewEncoder(w).Encode(geminiResponse{
				Candidates: []struct {
					Content geminiContent `json:"content"`
				}{
					{Content: geminiContent{Parts: []geminiPart{{Text: "# Slide 1"}}}},
				},
			})
		}))
		defer srv.Close()

		c := NewGeminiClient("secret", nil)
		c.baseURL = srv.URL

		text, err := c.Generate(context.Background(), "make slides")
		require.NoError(t, err)
		assert.Equal(t, "# Slide 1", text)

		assert.Equal(t, "/models/"+geminiModel+":generateContent", gotPath)
		assert.Equal(t, "secret", gotKey)
		require.Len(t, gotBody.Contents, 1)
		assert.Equal(t, "make slides", gotBody.Contents[0].Parts[0].Text)
	})

	t.Run("non-200 status is an adapter error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewGeminiClient("secret", nil)
		c.baseURL = srv.URL

		_, err := c.Generate(context.Background(), "make slides")

		var adapterErr *entities.AdapterError
		require.ErrorAs(t, err, &adapterErr)
		assert.Equal(t, "gemini", adapterErr.Provider)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("empty candidate list is an adapter error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates": []}`))
		}))
		defer srv.Close()

		c := NewGeminiClient("secret", nil)
		c.baseURL = srv.URL

		_, err := c.Generate(context.Background(), "make slides")

		var adapterErr *entities.AdapterError
		require.ErrorAs(t, err, &adapterErr)
	})

	t.Run("unreachable server is an adapter error", func(t *testing.T) {
		c := NewGeminiClient("secret", nil)
		c.baseURL = "http://127.0.0.1:1"

		_, err := c.Generate(context.Background(), "make slides")

		var adapterErr *entities.AdapterError
		require.ErrorAs(t, err, &adapterErr)
	})
}

func TestOpenAIGenerate(t *testing.T) {
	t.Run("returns the first choice's content", func(t *testing.T) {
		var gotAuth string
		var gotBody openAIRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.Equal(t, "/chat/completions", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "# Slide 1"}}]}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient("secret", nil)
		c.baseURL = srv.URL

		text, err := c.Generate(context.Background(), "make slides")
		require.NoError(t, err)
		assert.Equal(t, "# Slide 1", text)

		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, openAIModel, gotBody.Model)
		require.Len(t, gotBody.Messages, 1)
		assert.Equal(t, "user", gotBody.Messages[0].Role)
	})

	t.Run("non-200 status is an adapter error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewOpenAIClient("secret", nil)
		c.baseURL = srv.URL

		_, err := c.Generate(context.Background(), "make slides")

		var adapterErr *entities.AdapterError
		require.ErrorAs(t, err, &adapterErr)
		assert.Equal(t, "openai", adapterErr.Provider)
	})

	t.Run("empty choices is an adapter error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		c := NewOpenAIClient("secret", nil)
		c.baseURL = srv.URL

		_, err := c.Generate(context.Background(), "make slides")

		var adapterErr *entities.AdapterError
		require.ErrorAs(t, err, &adapterErr)
	})
}

func TestForProvider(t *testing.T) {
	t.Run("offline and empty select no generator", func(t *testing.T) {
		for _, name := range []string{"", "offline"} {
			gen, err := ForProvider(name, "", nil)
			require.NoError(t, err)
			assert.Nil(t, gen)
		}
	})

	t.Run("known providers", func(t *testing.T) {
		gen, err := ForProvider("gemini", "key", nil)
		require.NoError(t, err)
		assert.IsType(t, &GeminiClient{}, gen)

		gen, err = ForProvider("openai", "key", nil)
		require.NoError(t, err)
		assert.IsType(t, &OpenAIClient{}, gen)
	})

	t.Run("unknown provider is a validation error", func(t *testing.T) {
		_, err := ForProvider("mystery", "key", nil)

		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "provider", validationErr.Field)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
