package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

func TestStrip(t *testing.T) {
	p := NewPolicy()

	t.Run("removes markup", func(t *testing.T) {
		assert.Equal(t, "hello world", p.Strip(`<script>alert(1)</script>hello <b>world</b>`))
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "Q3 Sales Review", p.Strip("Q3 Sales Review"))
	})

	t.Run("diagram arrows survive", func(t *testing.T) {
		code := "User->>System: Login Request\nSystem-->>User: Token"
		assert.Equal(t, code, p.Strip(code))
	})

	t.Run("is deterministic", func(t *testing.T) {
		in := `text <em>with</em> & entities`
		assert.Equal(t, p.Strip(in), p.Strip(in))
	})
}

func TestStripKeepingCode(t *testing.T) {
	p := NewPolicy()

	out := p.StripKeepingCode(`<div><pre><code>x = 1</code></pre></div>`)
	assert.Contains(t, out, "<code>x = 1</code>")
	assert.NotContains(t, out, "<div>")
}

func TestCleanField(t *testing.T) {
	p := NewPolicy()

	t.Run("trims and strips", func(t *testing.T) {
		out, err := p.CleanField("topic", "  <b>Q3 Sales</b>  ")
		require.NoError(t, err)
		assert.Equal(t, "Q3 Sales", out)
	})

	t.Run("rejects oversized field", func(t *testing.T) {
		_, err := p.CleanField("topic", strings.Repeat("a", entities.MaxFieldChars+1))

		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "topic", validationErr.Field)
	})

	t.Run("rejects denylisted characters", func(t *testing.T) {
		for _, s := range []string{"back`tick", "curly{brace", "back\\slash"} {
			_, err := p.CleanField("topic", s)
			assert.Error(t, err, s)
		}
	})
}

func TestCleanMessage(t *testing.T) {
	p := NewPolicy()

	t.Run("accepts a normal chat message", func(t *testing.T) {
		out, err := p.CleanMessage("generate a deck for Q3 Sales, audience: Investors")
		require.NoError(t, err)
		assert.Equal(t, "generate a deck for Q3 Sales, audience: Investors", out)
	})

	t.Run("rejects oversized message", func(t *testing.T) {
		_, err := p.CleanMessage(strings.Repeat("a", entities.MaxChatChars+1))

		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "message", validationErr.Field)
	})
}
