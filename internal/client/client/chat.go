package client

import (
	"context"
	"iter"
)

// SystemPrompt sets the assistant's persona.
const SystemPrompt = "You are AcadMate, a friendly and helpful academic assistant. You help students with their questions, explain concepts, and provide study support. Your tone is encouraging and clear."

type ChatClient interface {
	StartChat(systemPrompt string) (Chat, error)
}

// Chat is one conversation. SendMessageStream yields reply chunks in order;
// a non-nil error is always the last value yielded. The history only records
// exchanges whose stream completed.
type Chat interface {
	SendMessageStream(ctx context.Context, message string) iter.Seq2[string, error]
}
