package entities

// Sanitization ceilings for externally supplied strings.
const (
	MaxFieldChars       = 1000
	MaxChatChars        = 5000
	MaxModelOutputChars = 100000
)

// Default values applied to unspecified deck request fields.
const (
	DefaultTopic      = "Untitled Presentation"
	DefaultAudience   = "General"
	DefaultContext    = "Business presentation"
	DefaultKeyMessage = "Take action"
	DefaultTemplate   = "minimal"
)

// SlideInput is the deck request. All fields are sanitized strings;
// it is treated as immutable once constructed and consumed once per
// deck generation.
type SlideInput struct {
	Topic      string `json:"topic"`
	Audience   string `json:"audience"`
	Context    string `json:"context"`
	KeyMessage string `json:"key_message"`
	Tone       string `json:"tone,omitempty"`
	Style      string `json:"style,omitempty"`
	Template   string `json:"template"`
}

// NewSlideInput returns a fully defaulted deck request.
func NewSlideInput() SlideInput {
	return SlideInput{
		Topic:      DefaultTopic,
		Audience:   DefaultAudience,
		Context:    DefaultContext,
		KeyMessage: DefaultKeyMessage,
		Template:   DefaultTemplate,
	}
}

// ApplyDefaults fills empty required fields. Tone and style stay empty
// unless requested; audience-based defaults are resolved at generation time.
func (in *SlideInput) ApplyDefaults() {
	if in.Topic == "" {
		in.Topic = DefaultTopic
	}
	if in.Audience == "" {
		in.Audience = DefaultAudience
	}
	if in.Context == "" {
		in.Context = DefaultContext
	}
	if in.KeyMessage == "" {
		in.KeyMessage = DefaultKeyMessage
	}
	if in.Template == "" {
		in.Template = DefaultTemplate
	}
}

// Fields exposes the request's free-text fields by name for uniform
// sanitization.
func (in *SlideInput) Fields() map[string]*string {
	return map[string]*string{
		"topic":       &in.Topic,
		"audience":    &in.Audience,
		"context":     &in.Context,
		"key_message": &in.KeyMessage,
		"tone":        &in.Tone,
		"style":       &in.Style,
		"template":    &in.Template,
	}
}
