// Event generation — prompts for a random kingdom event and parses the
// strict-JSON reply. Anything malformed is discarded rather than shown.
package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talgya/madangkara/internal/game"
)

const eventSystemPrompt = `You write random events for a real-time kingdom game set in medieval Java, inspired by the Saur Sepuh saga. The player is a Prabu (king) ruling the kingdom of Madangkara.

Respond ONLY with a JSON object, no prose around it:
{
  "title": "short, evocative event title in Indonesian",
  "description": "one or two sentences describing what happens, in Indonesian",
  "choices": [
    {
      "text": "button text describing the action, in Indonesian",
      "consequences": [{"resource": "...", "amount": 123}]
    },
    {
      "text": "...",
      "consequences": [{"resource": "...", "amount": -123}]
    }
  ]
}

Exactly two choices. Each consequence's "resource" must be one of: Pangan, Kayu, Batu, BijihBesi, Emas. "amount" is a signed integer: positive for gains, negative for losses. Keep amounts between -2000 and 2000.`

const eventUserPrompt = `Create one random event for the Prabu: a simple scenario with two choices, each with clear resource consequences (gain or loss). Respond with the JSON object only.`

// Generate asks for one narrative event. A nil client returns (nil, nil):
// the feature is simply off. Malformed replies also return (nil, nil) so
// the caller treats them as "no event this cycle".
func (c *Client) Generate() (*game.Event, error) {
	if !c.Enabled() {
		return nil, nil
	}

	text, err := c.complete(eventSystemPrompt, eventUserPrompt, 600)
	if err != nil {
		return nil, fmt.Errorf("generate event: %w", err)
	}

	ev, err := ParseEvent(text)
	if err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	return ev, nil
}

// ParseEvent extracts and validates the event JSON from a completion. The
// model may wrap the object in explanation text, so the outermost braces
// are located first.
func ParseEvent(text string) (*game.Event, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found")
	}

	var ev game.Event
	if err := json.Unmarshal([]byte(text[start:end+1]), &ev); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	if ev.Title == "" || ev.Description == "" {
		return nil, fmt.Errorf("missing title or description")
	}
	if len(ev.Choices) != 2 {
		return nil, fmt.Errorf("expected 2 choices, got %d", len(ev.Choices))
	}
	for i, choice := range ev.Choices {
		if choice.Text == "" {
			return nil, fmt.Errorf("choice %d has no text", i)
		}
		for _, q := range choice.Consequences {
			if !q.Resource.Known() {
				return nil, fmt.Errorf("choice %d references unknown resource %q", i, q.Resource)
			}
		}
	}
	return &ev, nil
}
