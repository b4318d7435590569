package mapper

import (
	"encoding/json"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:        c.Id,
		Owner:     c.Owner,
		With:      c.With,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) ChatToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:        c.Id,
		Owner:     c.Owner,
		With:      c.With,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:       msg.Id,
		Sender:   msg.Sender,
		Receiver: msg.Receiver,
		Body:     msg.Body,
		Read:     msg.Read,
		Date:     msg.Date,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:       msg.Id,
		Sender:   msg.Sender,
		Receiver: msg.Receiver,
		Body:     msg.Body,
		Read:     msg.Read,
		Date:     msg.Date,
	}
}

func (m *ChatMapper) SystemLogToModel(l *entity.SystemLog) *model.SystemLog {
	if l == nil {
		return nil
	}
	details, _ := json.Marshal(l.Details)
	return &model.SystemLog{
		Id:        l.Id,
		EventType: l.EventType,
		Details:   datatypes.JSON(details),
		CreatedAt: l.CreatedAt,
	}
}

func (m *ChatMapper) SystemLogToEntity(l *model.SystemLog) *entity.SystemLog {
	if l == nil {
		return nil
	}
	details := make(map[string]interface{})
	_ = json.Unmarshal(l.Details, &details)
	return &entity.SystemLog{
		Id:        l.Id,
		EventType: l.EventType,
		Details:   details,
		CreatedAt: l.CreatedAt,
	}
}
