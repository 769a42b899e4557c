// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-interviewer-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the score-answer topic: each message drives the
// feedback passes for one recorded answer and attaches the results.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	feedbackService IFeedbackService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	feedbackService IFeedbackService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		feedbackService: feedbackService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ScoreAnswerMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Scoring answer for session %s", payload.SessionId)

	_, err = cs.feedbackService.EvaluateAndAttach(ctx, payload.UserId, payload.SessionId, payload.Question, payload.Answer)
	if err != nil {
		// Collaborator failures are surfaced (logged) but never retried
		// here; the client can re-run feedback explicitly.
		log.Printf("[ERROR] Feedback pass failed for session %s: %v", payload.SessionId, err)
		msg.Ack()
		return
	}

	msg.Ack()
}
