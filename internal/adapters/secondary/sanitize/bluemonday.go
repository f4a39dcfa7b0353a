package sanitize

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// denylist holds characters that are structurally dangerous downstream:
// they can break out of presentation text runs or corrupt chart code
// blocks. Strings containing any of them are rejected outright.
const denylist = "<>{}\\`"

// Policy implements ports.Sanitizer on top of bluemonday. Stripping is a
// pure function; the same input always yields the same output.
type Policy struct {
	strict   *bluemonday.Policy
	withCode *bluemonday.Policy
}

// NewPolicy creates the sanitization policy pair: a strict policy that
// strips every tag, and a code-preserving one for raw model output.
func NewPolicy() *Policy {
	withCode := bluemonday.NewPolicy()
	withCode.AllowElements("pre", "code")

	return &Policy{
		strict:   bluemonday.StrictPolicy(),
		withCode: withCode,
	}
}

// Strip removes all markup tags and returns plain text. Entity escaping
// introduced by the HTML sanitizer is undone so literal characters such
// as diagram arrows survive untouched.
func (p *Policy) Strip(s string) string {
	return html.UnescapeString(p.strict.Sanitize(s))
}

// StripKeepingCode removes markup but keeps pre/code blocks intact.
func (p *Policy) StripKeepingCode(s string) string {
	return html.UnescapeString(p.withCode.Sanitize(s))
}

// CleanField strips markup from a structured input field and enforces
// the field policy: at most MaxFieldChars characters and none of the
// denylisted characters.
func (p *Policy) CleanField(field, s string) (string, error) {
	return p.clean(field, s, entities.MaxFieldChars)
}

// CleanMessage strips markup from a chat message and enforces the
// chat-message policy.
func (p *Policy) CleanMessage(s string) (string, error) {
	return p.clean("message", s, entities.MaxChatChars)
}

func (p *Policy) clean(field, s string, maxLen int) (string, error) {
	cleaned := strings.TrimSpace(p.Strip(s))

	if len(cleaned) > maxLen {
		return "", &entities.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("exceeds %d characters", maxLen),
		}
	}

	if i := strings.IndexAny(cleaned, denylist); i >= 0 {
		return "", &entities.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("contains forbidden character %q", cleaned[i]),
		}
	}

	return cleaned, nil
}
