package service

import (
	"context"
	"encoding/json"
	"log"

	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SessionViewDelivery defines how to push session views in real time.
// Typically implemented by the WebSocket Hub.
type SessionViewDelivery interface {
	Send(sessionId string, view *dto.SessionView)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process session event topic and turns
// each event into a WebSocket push of the freshest session view.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo contract.SessionRepository
	delivery    SessionViewDelivery
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo contract.SessionRepository,
	delivery SessionViewDelivery,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
		delivery:    delivery,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.SessionEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	session, found := cs.sessionRepo.Get(payload.SessionId)
	if !found {
		// Session expired between mutation and push; nothing to deliver.
		log.Printf("[WARN] Session %s gone before push", payload.SessionId)
		msg.Ack()
		return
	}

	cs.delivery.Send(session.Id, dto.NewSessionView(session))
	msg.Ack()
}
