package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/dmitrijs2005/acadmate/internal/client/client"
	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake chat client ----

type fakeChat struct {
	chunks []string
	err    error
	sent   []string
}

func (f *fakeChat) SendMessageStream(_ context.Context, msg string) iter.Seq2[string, error] {
	f.sent = append(f.sent, msg)
	return func(yield func(string, error) bool) {
		for _, c := range f.chunks {
			if !yield(c, nil) {
				return
			}
		}
		if f.err != nil {
			yield("", f.err)
		}
	}
}

type fakeChatClient struct {
	chat     *fakeChat
	startErr error
	prompt   string
}

func (f *fakeChatClient) StartChat(systemPrompt string) (client.Chat, error) {
	f.prompt = systemPrompt
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.chat, nil
}

func newChatSvc(cc client.ChatClient) *chatService {
	svc := NewChatService(cc, logging.Discard()).(*chatService)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
	return svc
}

// ---- tests ----

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hello Ada! I am AcadMate's AI assistant. How can I help you with your studies today?", Greeting("Ada"))
	assert.Equal(t, "Hello there! I am AcadMate's AI assistant. How can I help you with your studies today?", Greeting(""))
}

func TestStart_Available(t *testing.T) {
	cc := &fakeChatClient{chat: &fakeChat{}}
	svc := newChatSvc(cc)

	first := svc.Start(context.Background(), models.Profile{Name: "Ada"})
	assert.Equal(t, models.RoleModel, first.Role)
	assert.Equal(t, Greeting("Ada"), first.Text)
	assert.True(t, svc.Available())
	assert.Equal(t, client.SystemPrompt, cc.prompt)
}

func TestStart_Unavailable(t *testing.T) {
	svc := newChatSvc(nil)
	first := svc.Start(context.Background(), models.Profile{Name: "Ada"})
	assert.Equal(t, UnavailableMessage, first.Text)
	assert.False(t, svc.Available())

	_, err := svc.Send(context.Background(), "hi", nil)
	require.ErrorIs(t, err, common.ErrExternalServiceUnavailable)

	svc = newChatSvc(&fakeChatClient{startErr: errors.New("boom")})
	first = svc.Start(context.Background(), models.Profile{})
	assert.Equal(t, UnavailableMessage, first.Text)
}

func TestSend_Streams(t *testing.T) {
	chat := &fakeChat{chunks: []string{"Photo", "synthesis ", "is..."}}
	svc := newChatSvc(&fakeChatClient{chat: chat})
	svc.Start(context.Background(), models.Profile{Name: "Ada"})

	var seen []string
	reply, err := svc.Send(context.Background(), "what is photosynthesis?", func(c string) { seen = append(seen, c) })
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis is...", reply.Text)
	assert.Equal(t, chat.chunks, seen)

	msgs := svc.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.RoleUser, msgs[1].Role)
	assert.Equal(t, "what is photosynthesis?", msgs[1].Text)
	assert.Equal(t, models.ChatMessage{ID: "m3", Role: models.RoleModel, Text: "Photosynthesis is..."}, msgs[2])
}

func TestSend_BlankIgnored(t *testing.T) {
	chat := &fakeChat{}
	svc := newChatSvc(&fakeChatClient{chat: chat})
	svc.Start(context.Background(), models.Profile{})

	msg, err := svc.Send(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, models.ChatMessage{}, msg)
	assert.Len(t, svc.Messages(), 1)
	assert.Empty(t, chat.sent)
}

func TestSend_FailureReplacesPartial(t *testing.T) {
	chat := &fakeChat{chunks: []string{"partial"}, err: client.ErrUnavailable}
	svc := newChatSvc(&fakeChatClient{chat: chat})
	svc.Start(context.Background(), models.Profile{})

	reply, err := svc.Send(context.Background(), "hi", nil)
	require.ErrorIs(t, err, common.ErrExternalOperationFailed)
	assert.Equal(t, ChatErrorMessage, reply.Text)
	assert.Equal(t, ChatErrorMessage, svc.Messages()[2].Text)
}

func TestSend_ForeignErrorWrapped(t *testing.T) {
	chat := &fakeChat{err: errors.New("socket closed")}
	svc := newChatSvc(&fakeChatClient{chat: chat})
	svc.Start(context.Background(), models.Profile{})

	_, err := svc.Send(context.Background(), "hi", nil)
	require.ErrorIs(t, err, common.ErrExternalOperationFailed)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestStart_ResetsConversation(t *testing.T) {
	svc := newChatSvc(&fakeChatClient{chat: &fakeChat{chunks: []string{"ok"}}})
	svc.Start(context.Background(), models.Profile{})
	_, err := svc.Send(context.Background(), "hi", nil)
	require.NoError(t, err)
	require.Len(t, svc.Messages(), 3)

	svc.Start(context.Background(), models.Profile{Name: "Ada"})
	assert.Len(t, svc.Messages(), 1)
}
