package arena

import (
	"context"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/chatbackend"
)

// Guardian wraps a chat backend with a fixed system prompt and an
// accumulated conversation history. Per spec §4.9, a Guardian is
// instantiated fresh from an EvolvedPrompt's text at the start of every
// generation; per spec §4.5, its history is cleared after every scenario
// so episodes never contaminate one another.
type Guardian struct {
	ID           string
	SystemPrompt string
	backend      chatbackend.Backend
	history      []chatbackend.Message
}

// NewGuardian constructs a Guardian around backend with systemPrompt as
// its fixed system message.
func NewGuardian(id, systemPrompt string, backend chatbackend.Backend) *Guardian {
	return &Guardian{ID: id, SystemPrompt: systemPrompt, backend: backend}
}

// Respond sends userMessage as the next turn of this guardian's
// conversation and returns the raw assistant text.
func (g *Guardian) Respond(ctx context.Context, userMessage string) (string, error) {
	messages := make([]chatbackend.Message, 0, len(g.history)+2)
	messages = append(messages, chatbackend.Message{Role: chatbackend.RoleSystem, Content: g.SystemPrompt})
	messages = append(messages, g.history...)
	messages = append(messages, chatbackend.Message{Role: chatbackend.RoleUser, Content: userMessage})

	reply, err := g.backend.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	g.history = append(g.history,
		chatbackend.Message{Role: chatbackend.RoleUser, Content: userMessage},
		chatbackend.Message{Role: chatbackend.RoleAssistant, Content: reply},
	)
	return reply, nil
}

// Reset clears the guardian's accumulated conversation history. The
// source distinguishes `reset`/`resetFull` with identical bodies; this
// implementation collapses them into the one method.
func (g *Guardian) Reset() {
	g.history = nil
}
