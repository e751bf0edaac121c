package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"placement-prep/internal/domain/chat"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/infrastructure/chatbot"
	"placement-prep/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	chatPromptHistory = 10
	ChatHistoryLimit  = 50
)

var (
	ErrEmptyMessage       = errors.New("message is required")
	ErrChatBackendFailure = errors.New("chat backend failed")
)

type ChatUsecase interface {
	Send(ctx context.Context, userID uuid.UUID, message string) (string, error)
	History(ctx context.Context, userID uuid.UUID) ([]chat.Message, error)
}

type Chat struct {
	users   user.Repository
	history repository.ChatRepository
	bot     chatbot.Chatbot
	logger  *zap.Logger
}

func NewChatUsecase(users user.Repository, history repository.ChatRepository, bot chatbot.Chatbot, logger *zap.Logger) *Chat {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chat{users: users, history: history, bot: bot, logger: logger}
}

func (u *Chat) Send(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if _, err := u.history.Append(ctx, chat.Message{UserID: userID, Role: chat.RoleUser, Message: message}); err != nil {
		return "", fmt.Errorf("save user message: %w", err)
	}

	recent, err := u.history.Recent(ctx, userID, chatPromptHistory)
	if err != nil {
		return "", fmt.Errorf("load chat history: %w", err)
	}

	reply, err := u.bot.Reply(ctx, BuildChatPrompt(usr.Username, recent, message))
	if err != nil {
		u.logger.Error("chat backend failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrChatBackendFailure, err)
	}

	if _, err := u.history.Append(ctx, chat.Message{UserID: userID, Role: chat.RoleAssistant, Message: reply}); err != nil {
		return "", fmt.Errorf("save assistant message: %w", err)
	}
	return reply, nil
}

func (u *Chat) History(ctx context.Context, userID uuid.UUID) ([]chat.Message, error) {
	return u.history.Recent(ctx, userID, ChatHistoryLimit)
}

// BuildChatPrompt frames the latest message with the user's name and recent turns, oldest first.
func BuildChatPrompt(username string, history []chat.Message, latest string) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.Role+": "+m.Message)
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful placement preparation assistant.\n")
	fmt.Fprintf(&sb, "The user you are talking to is named %s.\n\n", username)
	sb.WriteString("Recent conversation history:\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\nNow respond to the user's latest message:\n")
	sb.WriteString("user: " + latest + "\n")
	return sb.String()
}
