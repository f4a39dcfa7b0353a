package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/adapters/secondary/sanitize"
	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// mockGenerator is a testify mock for the TextGenerator port.
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newTestExtractor() *IntentExtractor {
	return NewIntentExtractor(sanitize.NewPolicy(), nil)
}

func TestExtractOffline(t *testing.T) {
	e := newTestExtractor()

	t.Run("regex fallback parses structured message", func(t *testing.T) {
		input, err := e.Extract(context.Background(), "generate a deck for Q3 Sales, audience: Investors", nil)
		require.NoError(t, err)

		assert.Equal(t, "Q3 Sales", input.Topic)
		assert.Equal(t, "Investors", input.Audience)
		assert.Equal(t, entities.DefaultContext, input.Context)
		assert.Equal(t, entities.DefaultTemplate, input.Template)
	})

	t.Run("unstructured message gets full defaults", func(t *testing.T) {
		input, err := e.Extract(context.Background(), "hello there", nil)
		require.NoError(t, err)

		assert.Equal(t, entities.DefaultTopic, input.Topic)
		assert.Equal(t, entities.DefaultAudience, input.Audience)
	})

	t.Run("template and key message patterns", func(t *testing.T) {
		input, err := e.Extract(context.Background(),
			"generate slides about growth, template: corporate, key message: buy now", nil)
		require.NoError(t, err)

		assert.Equal(t, "corporate", input.Template)
		assert.Equal(t, "buy now", input.KeyMessage)
	})

	t.Run("oversized message is rejected", func(t *testing.T) {
		_, err := e.Extract(context.Background(), strings.Repeat("a", entities.MaxChatChars+1), nil)

		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestExtractWithModel(t *testing.T) {
	e := newTestExtractor()

	t.Run("fenced json response", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return(
			"Here you go:\n```json\n{\"topic\": \"AI Security\", \"audience\": \"Investors\", \"template\": \"corporate\"}\n```", nil)

		input, err := e.Extract(context.Background(), "pitch our AI security startup", gen)
		require.NoError(t, err)

		assert.Equal(t, "AI Security", input.Topic)
		assert.Equal(t, "Investors", input.Audience)
		assert.Equal(t, "corporate", input.Template)
		assert.Equal(t, entities.DefaultContext, input.Context)
		gen.AssertExpectations(t)
	})

	t.Run("bare json object response", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return(
			`{"topic": "Roadmap Review"}`, nil)

		input, err := e.Extract(context.Background(), "roadmap please", gen)
		require.NoError(t, err)
		assert.Equal(t, "Roadmap Review", input.Topic)
	})

	t.Run("model failure falls back to regex", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))

		input, err := e.Extract(context.Background(), "generate a deck for Q3 Sales", gen)
		require.NoError(t, err)
		assert.Equal(t, "Q3 Sales", input.Topic)
	})

	t.Run("invalid json falls back to regex", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("not json at all", nil)

		input, err := e.Extract(context.Background(), "generate a deck for Hiring", gen)
		require.NoError(t, err)
		assert.Equal(t, "Hiring", input.Topic)
	})

	t.Run("oversized model response falls back to regex", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return(
			"{\"topic\": \""+strings.Repeat("a", maxIntentChars)+"\"}", nil)

		input, err := e.Extract(context.Background(), "generate a deck for Planning", gen)
		require.NoError(t, err)
		assert.Equal(t, "Planning", input.Topic)
	})

	t.Run("field failing sanitization falls back to regex", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return(
			`{"topic": "ok", "audience": "bad`+"`"+`tick"}`, nil)

		input, err := e.Extract(context.Background(), "generate a deck for Sales", gen)
		require.NoError(t, err)
		assert.Equal(t, "Sales", input.Topic)
	})
}
