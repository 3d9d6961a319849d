package httpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Publisher is the outbound half of the event bus HTTP handlers use to
// fan applied mutations out to the messaging layer.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// PublishJSON marshals payload and publishes it with a fresh correlation
// id. HTTP mutations go through here so room clients see them the same
// way they see bus-originated changes.
func PublishJSON(ctx context.Context, pub Publisher, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	return pub.Publish(ctx, topic, msg)
}
