package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/madangkara/internal/game"
)

const validEventJSON = `{
	"title": "Pedagang dari Seberang",
	"description": "Seorang saudagar menawarkan kayu jati dengan harga murah.",
	"choices": [
		{"text": "Beli kayunya", "consequences": [{"resource": "Emas", "amount": -300}, {"resource": "Kayu", "amount": 1500}]},
		{"text": "Tolak tawarannya", "consequences": []}
	]
}`

func TestParseEventValid(t *testing.T) {
	ev, err := ParseEvent(validEventJSON)
	require.NoError(t, err)

	assert.Equal(t, "Pedagang dari Seberang", ev.Title)
	require.Len(t, ev.Choices, 2)
	require.Len(t, ev.Choices[0].Consequences, 2)
	assert.Equal(t, game.ResourceEmas, ev.Choices[0].Consequences[0].Resource)
	assert.Equal(t, -300, ev.Choices[0].Consequences[0].Amount)
}

func TestParseEventIgnoresSurroundingProse(t *testing.T) {
	text := "Here is the event you asked for:\n" + validEventJSON + "\nHope this works!"

	ev, err := ParseEvent(text)
	require.NoError(t, err)
	assert.Equal(t, "Pedagang dari Seberang", ev.Title)
}

func TestParseEventNoJSON(t *testing.T) {
	_, err := ParseEvent("I cannot produce an event right now.")
	assert.Error(t, err)
}

func TestParseEventMalformedJSON(t *testing.T) {
	_, err := ParseEvent(`{"title": "x", "description":`)
	assert.Error(t, err)
}

func TestParseEventMissingTitle(t *testing.T) {
	_, err := ParseEvent(`{
		"description": "d",
		"choices": [
			{"text": "a", "consequences": []},
			{"text": "b", "consequences": []}
		]
	}`)
	assert.ErrorContains(t, err, "title")
}

func TestParseEventWrongChoiceCount(t *testing.T) {
	_, err := ParseEvent(`{
		"title": "t", "description": "d",
		"choices": [{"text": "only one", "consequences": []}]
	}`)
	assert.ErrorContains(t, err, "2 choices")

	_, err = ParseEvent(`{
		"title": "t", "description": "d",
		"choices": [
			{"text": "a", "consequences": []},
			{"text": "b", "consequences": []},
			{"text": "c", "consequences": []}
		]
	}`)
	assert.ErrorContains(t, err, "2 choices")
}

func TestParseEventEmptyChoiceText(t *testing.T) {
	_, err := ParseEvent(`{
		"title": "t", "description": "d",
		"choices": [
			{"text": "", "consequences": []},
			{"text": "b", "consequences": []}
		]
	}`)
	assert.Error(t, err)
}

func TestParseEventUnknownResource(t *testing.T) {
	_, err := ParseEvent(`{
		"title": "t", "description": "d",
		"choices": [
			{"text": "a", "consequences": [{"resource": "Permata", "amount": 10}]},
			{"text": "b", "consequences": []}
		]
	}`)
	assert.ErrorContains(t, err, "Permata")
}

func TestNilClientIsDisabled(t *testing.T) {
	c := NewClient("")
	assert.False(t, c.Enabled())

	ev, err := c.Generate()
	assert.NoError(t, err)
	assert.Nil(t, ev)
}
