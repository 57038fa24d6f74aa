package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/acadmate/internal/client/client"
	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/logging"
	"github.com/google/uuid"
)

const (
	UnavailableMessage = "AI features are currently unavailable. Please make sure the `GEMINI_API_KEY` is set up correctly by following the instructions in README.md."
	ChatErrorMessage   = "Sorry, I encountered an error. Please try again."
)

// Greeting is the first assistant message shown to name.
func Greeting(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	return fmt.Sprintf("Hello %s! I am AcadMate's AI assistant. How can I help you with your studies today?", name)
}

// ChatService runs one in-memory assistant conversation at a time.
//
// Contract:
//   - Start resets the conversation and returns the opening message;
//   - Send ignores blank input, fails with common.ErrExternalServiceUnavailable
//     when no chat client is configured, streams chunks to onChunk and returns
//     the final model message;
//   - a failed stream leaves ChatErrorMessage as the model message and
//     returns an error wrapping common.ErrExternalOperationFailed.
type ChatService interface {
	Start(ctx context.Context, p models.Profile) models.ChatMessage
	Available() bool
	Messages() []models.ChatMessage
	Send(ctx context.Context, text string, onChunk func(string)) (models.ChatMessage, error)
}

type chatService struct {
	cc    client.ChatClient
	log   logging.Logger
	newID func() string

	mu       sync.Mutex
	chat     client.Chat
	messages []models.ChatMessage
}

// NewChatService returns a service over cc. A nil cc means the assistant is
// not configured.
func NewChatService(cc client.ChatClient, log logging.Logger) ChatService {
	return &chatService{cc: cc, log: log.With("component", "chat"), newID: uuid.NewString}
}

func (s *chatService) Start(ctx context.Context, p models.Profile) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat = nil
	if s.cc != nil {
		chat, err := s.cc.StartChat(client.SystemPrompt)
		if err != nil {
			s.log.Warn(ctx, "start chat failed", "error", err)
		} else {
			s.chat = chat
		}
	}

	text := UnavailableMessage
	if s.chat != nil {
		text = Greeting(p.Name)
	}
	first := models.ChatMessage{ID: s.newID(), Role: models.RoleModel, Text: text}
	s.messages = []models.ChatMessage{first}
	return first
}

func (s *chatService) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat != nil
}

func (s *chatService) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

func (s *chatService) Send(ctx context.Context, text string, onChunk func(string)) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, nil
	}
	if s.chat == nil {
		return models.ChatMessage{}, fmt.Errorf("%w: assistant is not configured", common.ErrExternalServiceUnavailable)
	}
	if onChunk == nil {
		onChunk = func(string) {}
	}

	s.messages = append(s.messages, models.ChatMessage{ID: s.newID(), Role: models.RoleUser, Text: text})
	s.messages = append(s.messages, models.ChatMessage{ID: s.newID(), Role: models.RoleModel})
	reply := &s.messages[len(s.messages)-1]

	var sb strings.Builder
	for chunk, err := range s.chat.SendMessageStream(ctx, text) {
		if err != nil {
			s.log.Error(ctx, "chat stream failed", "error", err)
			reply.Text = ChatErrorMessage
			if !errors.Is(err, common.ErrExternalOperationFailed) {
				err = fmt.Errorf("%w: %v", common.ErrExternalOperationFailed, err)
			}
			return *reply, err
		}
		sb.WriteString(chunk)
		reply.Text = sb.String()
		onChunk(chunk)
	}
	return *reply, nil
}
