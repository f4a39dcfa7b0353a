package ports

// Sanitizer strips markup and enforces character and length policy on
// every external string before it reaches the parser or the assembler.
type Sanitizer interface {
	// Strip removes all markup tags, returning plain text.
	Strip(s string) string

	// StripKeepingCode removes markup but preserves pre/code content, for
	// raw model output that legitimately carries fenced code blocks.
	StripKeepingCode(s string) string

	// CleanField strips s and enforces the structured-field policy
	// (length ceiling and dangerous-character denylist). A violation is
	// reported as a ValidationError naming the field.
	CleanField(field, s string) (string, error)

	// CleanMessage strips s and enforces the chat-message policy.
	CleanMessage(s string) (string, error)
}
