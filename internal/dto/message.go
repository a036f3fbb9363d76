package dto

import (
	"time"

	"github.com/eventpulse/eventpulse-api/internal/models"
)

// MessageDTO represents an event message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	EventID   uint64    `json:"event_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		EventID:   message.EventID,
		UserID:    message.UserID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}

	if message.User.ID != 0 {
		author := ToUserDTO(message.User)
		dto.Author = &author
	}

	return dto
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = ToMessageDTO(message)
	}
	return dtos
}
