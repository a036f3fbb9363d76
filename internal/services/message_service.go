package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventpulse/eventpulse-api/internal/models"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound     = errors.New("message not found")
	ErrNotMessageOwner     = errors.New("only the author can modify this message")
	ErrMessageContentEmpty = errors.New("message content cannot be empty")
)

// MessageService handles the per-event message threads.
type MessageService struct {
	messageRepo repository.MessageRepository
	eventRepo   repository.EventRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, eventRepo repository.EventRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		eventRepo:   eventRepo,
	}
}

// ListMessages returns an event's messages oldest first.
func (s *MessageService) ListMessages(eventID uint64, page, limit int) ([]models.Message, int64, error) {
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrEventNotFound
		}
		return nil, 0, fmt.Errorf("failed to verify event: %w", err)
	}

	messages, total, err := s.messageRepo.ListByEvent(eventID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, total, nil
}

// PostMessage posts a message on an event.
func (s *MessageService) PostMessage(userID, eventID uint64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMessageContentEmpty
	}

	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to verify event: %w", err)
	}

	message := &models.Message{
		UserID:  userID,
		EventID: eventID,
		Content: content,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// UpdateMessage edits a message; only its author may do so.
func (s *MessageService) UpdateMessage(messageID, actorID uint64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMessageContentEmpty
	}

	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID != actorID {
		return nil, ErrNotMessageOwner
	}

	message.Content = content
	if err := s.messageRepo.Update(message); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return message, nil
}

// DeleteMessage removes a message; only its author may do so.
func (s *MessageService) DeleteMessage(messageID, actorID uint64) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if message.UserID != actorID {
		return ErrNotMessageOwner
	}

	if err := s.messageRepo.Delete(messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
