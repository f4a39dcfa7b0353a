package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// maxIntentChars caps the model's intent-extraction response; anything
// larger is treated as malformed and the regex fallback takes over.
const maxIntentChars = 10000

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

	topicRe      = regexp.MustCompile(`(?i)generate.*?(?:for|about)\s+([^,]+)`)
	audienceRe   = regexp.MustCompile(`(?i)audience\s*:\s*([^,]+)`)
	contextRe    = regexp.MustCompile(`(?i)context\s*:\s*([^,]+)`)
	keyMessageRe = regexp.MustCompile(`(?i)(?:key message|cta)\s*:\s*([^,]+)`)
	templateRe   = regexp.MustCompile(`(?i)template\s*:\s*([^,]+)`)
)

// IntentExtractor turns a free-text chat message into a deck request,
// either through a model call or a regex fallback. The fallback always
// succeeds and returns a fully defaulted request.
type IntentExtractor struct {
	sanitizer ports.Sanitizer
	logger    *slog.Logger
}

// NewIntentExtractor creates an intent extractor.
func NewIntentExtractor(sanitizer ports.Sanitizer, logger *slog.Logger) *IntentExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntentExtractor{sanitizer: sanitizer, logger: logger}
}

// Extract parses a chat message into a SlideInput. A nil generator means
// offline operation; any model failure degrades to the regex fallback.
// Only a message violating the sanitization policy is a hard error.
func (e *IntentExtractor) Extract(ctx context.Context, message string, gen ports.TextGenerator) (entities.SlideInput, error) {
	msg, err := e.sanitizer.CleanMessage(message)
	if err != nil {
		return entities.SlideInput{}, err
	}

	if gen == nil {
		return e.regexFallback(msg), nil
	}

	output, err := gen.Generate(ctx, intentPrompt(msg))
	if err != nil {
		e.logger.Warn("intent extraction model call failed",
			slog.String("error", err.Error()))
		return e.regexFallback(msg), nil
	}

	if len(output) > maxIntentChars {
		e.logger.Warn("intent extraction response too large",
			slog.Int("chars", len(output)))
		return e.regexFallback(msg), nil
	}

	input, ok := e.decodeIntent(output)
	if !ok {
		return e.regexFallback(msg), nil
	}

	return input, nil
}

// decodeIntent pulls a SlideInput out of model output, trying a fenced
// json block first, then any brace-delimited substring, then the raw
// text.
func (e *IntentExtractor) decodeIntent(output string) (entities.SlideInput, bool) {
	payload := output
	if m := fencedJSONRe.FindStringSubmatch(output); m != nil {
		payload = m[1]
	} else if start, end := strings.Index(output, "{"), strings.LastIndex(output, "}"); start >= 0 && end > start {
		payload = output[start : end+1]
	}

	var input entities.SlideInput
	if err := json.Unmarshal([]byte(payload), &input); err != nil {
		e.logger.Warn("invalid JSON from intent extraction",
			slog.String("error", err.Error()))
		return entities.SlideInput{}, false
	}

	input.ApplyDefaults()

	for field, value := range input.Fields() {
		cleaned, err := e.sanitizer.CleanField(field, *value)
		if err != nil {
			e.logger.Warn("intent field failed sanitization",
				slog.String("field", field), slog.String("error", err.Error()))
			return entities.SlideInput{}, false
		}
		*value = cleaned
	}
	input.ApplyDefaults()

	return input, true
}

// regexFallback extracts what it can from the message with fixed
// patterns and defaults the rest. It never fails.
func (e *IntentExtractor) regexFallback(message string) entities.SlideInput {
	input := entities.NewSlideInput()
	lower := strings.ToLower(message)

	if strings.Contains(lower, "for") {
		if m := topicRe.FindStringSubmatch(message); m != nil {
			input.Topic = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(lower, "audience") {
		if m := audienceRe.FindStringSubmatch(message); m != nil {
			input.Audience = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(lower, "context") {
		if m := contextRe.FindStringSubmatch(message); m != nil {
			input.Context = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(lower, "key message") || strings.Contains(lower, "cta") {
		if m := keyMessageRe.FindStringSubmatch(message); m != nil {
			input.KeyMessage = strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(lower, "template") {
		if m := templateRe.FindStringSubmatch(message); m != nil {
			input.Template = strings.TrimSpace(m[1])
		}
	}

	return input
}

func intentPrompt(message string) string {
	return fmt.Sprintf(`Parse the following chat message into a JSON object with fields: topic, audience, context, key_message, tone, style, template.
If a field is not specified, use default values: topic=%q, audience=%q, context=%q, key_message=%q, tone=null, style=null, template=%q.
Ensure the output is valid JSON.

Message: %s

Example Output:
`+"```json"+`
{
  "topic": "AI Cybersecurity Pitch",
  "audience": "Investors",
  "context": "TechCrunch Disrupt",
  "key_message": "Invest in AI security",
  "tone": "Formal",
  "style": "Clean & minimal",
  "template": "corporate"
}
`+"```",
		entities.DefaultTopic, entities.DefaultAudience, entities.DefaultContext,
		entities.DefaultKeyMessage, entities.DefaultTemplate, message)
}
