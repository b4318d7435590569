package service

import (
	"context"
	"encoding/json"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IActivityPublisher puts domain activity on the in-process bus, where the
// consumer service turns it into audit rows.
type IActivityPublisher interface {
	PublishActivity(ctx context.Context, event events.Event) error
}

type activityPublisher struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewActivityPublisher(topicName string, pubSub *gochannel.GoChannel) IActivityPublisher {
	return &activityPublisher{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *activityPublisher) PublishActivity(ctx context.Context, event events.Event) error {
	payload := dto.ActivityMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return p.pubSub.Publish(p.topicName, msg)
}
