package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// maxGenerateTokens is the default bound on a single completion.
const maxGenerateTokens = 8192

// Generate sends a conversation to the model and returns the generated
// text. System-role messages become the system prompt; user and
// assistant messages become conversation turns. A temperature <= 0
// means the model default.
//
// Generate returns an error on any transport or API failure; callers
// decide whether that failure is recoverable (workers turn it into a
// best-effort payload, the coordinator falls back to its default plan).
func (c *Client) Generate(ctx context.Context, msgs []models.Message, temperature float64) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("no messages to generate from")
	}

	system, turns := splitMessages(msgs)

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  turns,
	}
	if len(system) > 0 {
		params.System = system
	}
	if temperature > 0 {
		params.Temperature = anthropic.Float(temperature)
	}

	resp, err := c.sdk().Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	c.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}
	return text.String(), nil
}

// splitMessages partitions messages into system blocks and conversation
// turns. The Anthropic API requires the conversation to start with a
// user turn, so a leading assistant-only conversation gets a synthetic
// empty user turn; a fully system conversation becomes a single user
// turn carrying the combined text.
func splitMessages(msgs []models.Message) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	var turns []anthropic.MessageParam

	for _, m := range msgs {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case models.RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	if len(turns) == 0 {
		// System-only prompt: move the instruction into a user turn so
		// the request is well-formed.
		var combined strings.Builder
		for _, b := range system {
			combined.WriteString(b.Text)
			combined.WriteString("\n")
		}
		turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(combined.String())))
		system = nil
	}

	return system, turns
}
