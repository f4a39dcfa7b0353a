package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckValidate(t *testing.T) {
	t.Run("empty deck is a parse error", func(t *testing.T) {
		deck := &Deck{}
		err := deck.Validate()
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "no slides found", parseErr.Msg)
	})

	t.Run("deck with slides is valid", func(t *testing.T) {
		deck := &Deck{Slides: []Slide{NewSlide()}}
		assert.NoError(t, deck.Validate())
	})
}

func TestEnsureShape(t *testing.T) {
	t.Run("fills nil sequences and type", func(t *testing.T) {
		s := Slide{Title: "Bare"}
		s.EnsureShape()

		assert.NotNil(t, s.Content)
		assert.NotNil(t, s.Visuals)
		assert.NotNil(t, s.Notes)
		assert.NotNil(t, s.Engagement)
		assert.NotNil(t, s.AltText)
		assert.Equal(t, TypeStandard, s.Type)
	})

	t.Run("preserves existing values", func(t *testing.T) {
		s := Slide{
			Content: []string{"point"},
			Type:    TypeChart,
		}
		s.EnsureShape()

		assert.Equal(t, []string{"point"}, s.Content)
		assert.Equal(t, TypeChart, s.Type)
	})
}

func TestFirstAltText(t *testing.T) {
	s := NewSlide()

	_, ok := s.FirstAltText()
	assert.False(t, ok)

	s.AltText = append(s.AltText, "first", "second")
	text, ok := s.FirstAltText()
	require.True(t, ok)
	assert.Equal(t, "first", text)
}

func TestVisualLangAccepted(t *testing.T) {
	assert.True(t, LangJSON.Accepted())
	assert.True(t, LangMermaid.Accepted())
	assert.True(t, LangPlantUML.Accepted())
	assert.True(t, LangLaTeX.Accepted())
	assert.False(t, LangPython.Accepted())
	assert.False(t, VisualLang("ruby").Accepted())
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"spaces become underscores", "Q3 Sales Review", "Q3_Sales_Review"},
		{"special characters replaced", "Growth: 2025/2026?", "Growth__2025_2026_"},
		{"safe characters preserved", "deck-v1.2_final", "deck-v1.2_final"},
		{"empty topic falls back", "", "deck"},
		{"whitespace only falls back", "   ", "deck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFileName(tt.topic))
		})
	}
}

func TestSlideInputApplyDefaults(t *testing.T) {
	t.Run("fills empty fields", func(t *testing.T) {
		var in SlideInput
		in.ApplyDefaults()

		assert.Equal(t, DefaultTopic, in.Topic)
		assert.Equal(t, DefaultAudience, in.Audience)
		assert.Equal(t, DefaultContext, in.Context)
		assert.Equal(t, DefaultKeyMessage, in.KeyMessage)
		assert.Equal(t, DefaultTemplate, in.Template)
		assert.Empty(t, in.Tone)
		assert.Empty(t, in.Style)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		in := SlideInput{Topic: "Q3 Sales", Audience: "Investors"}
		in.ApplyDefaults()

		assert.Equal(t, "Q3 Sales", in.Topic)
		assert.Equal(t, "Investors", in.Audience)
		assert.Equal(t, DefaultContext, in.Context)
	})
}

func TestSlideInputFields(t *testing.T) {
	in := NewSlideInput()
	fields := in.Fields()

	require.Contains(t, fields, "topic")
	*fields["topic"] = "changed"
	assert.Equal(t, "changed", in.Topic)
}
