package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/common"
	"github.com/dmitrijs2005/supportchat/internal/logging"
	"github.com/dmitrijs2005/supportchat/internal/server/assistant"
	"github.com/dmitrijs2005/supportchat/internal/server/metrics"
	"github.com/dmitrijs2005/supportchat/internal/server/models"
	"github.com/dmitrijs2005/supportchat/internal/server/prompt"
)

const (
	msgEmptyMessage = "Message cannot be empty."
	botErrorFormat  = "Error: Failed to get response from bot. Please try again. (%s)"
)

// ChatService runs one chat turn: log the user message, ask the assistant,
// log the reply. Nothing is retried.
type ChatService struct {
	log     *MessageLog
	faq     string
	gateway assistant.Gateway
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewChatService(log *MessageLog, faq string, gw assistant.Gateway, m *metrics.Metrics, l logging.Logger) *ChatService {
	return &ChatService{
		log:     log,
		faq:     faq,
		gateway: gw,
		metrics: m,
		logger:  l.With("module", "chat"),
	}
}

// Send answers text on behalf of userID and returns the assistant's reply.
// Only an empty message is reported as a validation error; every other
// failure is a server error. A failed completion is still recorded in the
// log as a bot message starting with "Error:".
func (s *ChatService) Send(ctx context.Context, userID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", common.ValidationError(msgEmptyMessage)
	}

	// %v: a rejected user message is a server error, not a client one.
	if _, err := s.log.Append(ctx, userID, models.SenderUser, text); err != nil {
		s.logger.Error(ctx, "failed to save user message", "user_id", userID, "error", err)
		return "", s.fail(ctx, userID, fmt.Errorf("save user message: %v", err))
	}
	s.metrics.ChatMessage(string(models.SenderUser))

	start := time.Now()
	reply, err := s.gateway.Complete(ctx, prompt.Compose(s.faq, text))
	s.metrics.GatewayRequest(err, time.Since(start))
	if err != nil {
		var ge *assistant.GatewayError
		if !errors.As(err, &ge) {
			err = &assistant.GatewayError{Err: err}
		}
		s.logger.Error(ctx, "assistant request failed", "user_id", userID, "error", err)
		return "", s.fail(ctx, userID, err)
	}

	// Replies are logged even if the client has gone away.
	if _, err := s.log.Append(context.WithoutCancel(ctx), userID, models.SenderBot, reply); err != nil {
		s.logger.Error(ctx, "failed to save bot reply", "user_id", userID, "error", err)
		return "", s.fail(ctx, userID, fmt.Errorf("save bot reply: %v", err))
	}
	s.metrics.ChatMessage(string(models.SenderBot))

	return reply, nil
}

// fail records cause as a bot error message and returns it unchanged.
func (s *ChatService) fail(ctx context.Context, userID string, cause error) error {
	text := fmt.Sprintf(botErrorFormat, cause.Error())
	if _, err := s.log.Append(context.WithoutCancel(ctx), userID, models.SenderBot, text); err != nil {
		s.logger.Error(ctx, "failed to save error message", "user_id", userID, "error", err)
		return cause
	}
	s.metrics.ChatMessage(string(models.SenderBot))
	return cause
}

// History returns the conversation of userID oldest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]*models.ChatMessage, error) {
	return s.log.ListByUser(ctx, userID)
}
