package services

import (
	"fmt"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
)

// deckPrompt is the system prompt sent ahead of every deck request. The
// output format it demands is exactly the convention the deck parser
// recognizes.
const deckPrompt = `You are an expert slide architect. Generate professional slide decks in markdown format.

INSTRUCTIONS:
- Create 5-8 slides maximum
- Follow story structure: Hook -> Problem -> Solution -> Conclusion
- Include engaging visuals (charts, diagrams)
- Make content accessible with alt text
- Use clear, concise bullet points
- Include speaker notes and engagement techniques

OUTPUT FORMAT:
Use this exact markdown structure:

# Slide 1 - Title Slide
**Title:** [Main title]
**Subtitle:** [Context/tagline]
**Slide Notes:** [Speaker notes for this slide]
**Engagement Techniques:** [How to engage audience]

# Slide 2 - Hook/Problem
**Title:** [Slide title]
**Body:**
- [Key point 1]
- [Key point 2]
- [Key point 3]
**Visual:** [Description of visual element]
` + "```json" + `
{
  "$schema": "https://vega.github.io/schema/vega-lite/v5.json",
  "data": {"values": [{"category": "A", "value": 30}, {"category": "B", "value": 55}]},
  "mark": "bar",
  "encoding": {
    "x": {"field": "category", "type": "nominal"},
    "y": {"field": "value", "type": "quantitative"}
  }
}
` + "```" + `
**Alt Text:** [Accessibility description of visual]
**Slide Notes:** [Speaker notes]
**Engagement Techniques:** [Audience engagement ideas]

For diagrams, use Mermaid syntax:
` + "```mermaid" + `
sequenceDiagram
    participant User
    participant System
    User->>System: Login Request
    System-->>User: Authentication Token
` + "```" + `

TONE & STYLE GUIDELINES:
- Executives: Formal, data-driven, ROI-focused
- Investors: Compelling, market-focused, growth potential
- Sales Team: Energetic, benefit-focused, action-oriented
- Developers: Technical, detailed, implementation-focused
- Training: Educational, step-by-step, interactive

Generate slides that match the specified audience, context, and key message.

### Additional Instructions
- For diagram requests (e.g., sequence diagram, flowchart), generate a valid Mermaid code block tailored to the slide's context. Ensure the diagram is concise (at most 10 nodes) and includes a descriptive alt text.`

// userPrompt renders the per-request portion of the deck prompt.
func userPrompt(input entities.SlideInput, tone, style string) string {
	return fmt.Sprintf(`Topic: %s
Audience: %s
Context: %s
Key Message: %s
Tone: %s
Style: %s`,
		input.Topic, input.Audience, input.Context, input.KeyMessage, tone, style)
}

// offlineMarkdown is the fixed deck used when no model is available or a
// model call fails. It exercises every construct the parser understands.
func offlineMarkdown(input entities.SlideInput) string {
	return fmt.Sprintf(`# Slide 1 - Title Slide
**Title:** %s
**Subtitle:** %s
**Slide Notes:** Introduce the topic and set the stage.
**Engagement Techniques:** Share a compelling opening statement.

# Slide 2 - Agenda
**Title:** Agenda
**Body:**
- Hook: Why this matters
- Problem: Current challenges
- Solution: Our approach
- Conclusion: Next steps

# Slide 3 - Hook
**Title:** Why This Matters
**Body:**
- Market opportunity is growing rapidly
- Current solutions are inadequate
- Time-sensitive opportunity
**Visual:** Vega-Lite chart
`+"```json"+`
{
  "$schema": "https://vega.github.io/schema/vega-lite/v5.json",
  "data": {"values": [{"category": "Market Size", "value": 85}, {"category": "Growth Rate", "value": 45}]},
  "mark": "bar",
  "encoding": {"x": {"field": "category", "type": "nominal"}, "y": {"field": "value", "type": "quantitative"}}
}
`+"```"+`
**Alt Text:** Bar chart showing market opportunity metrics.
**Slide Notes:** Emphasize the urgency and scale of opportunity.
**Engagement Techniques:** Ask audience about their experience with this problem.

# Slide 4 - Solution
**Title:** Our Solution
**Body:**
- Innovative approach that addresses core issues
- Proven technology with measurable results
- Scalable implementation pathway
**Visual:** Mermaid diagram
`+"```mermaid"+`
sequenceDiagram
  participant User
  participant System
  participant Database
  User->>System: Submit Request
  System->>Database: Process Data
  Database-->>System: Return Results
  System-->>User: Deliver Solution
`+"```"+`
**Alt Text:** Process flow diagram showing solution workflow.
**Slide Notes:** Walk through each step of the solution.
**Engagement Techniques:** Demonstrate with a real example.

# Slide 5 - Closing
**Title:** Call to Action
**Body:**
- %s
- Ready to move forward together
- Questions and next steps
**Slide Notes:** Summarize key benefits and invite action.
**Engagement Techniques:** Open floor for questions and discussion.
`, input.Topic, input.Context, input.KeyMessage)
}
