// Package notify hands push notifications and one-time codes to the external
// delivery workers. Messages are queued on SQS; the workers own the Expo/FCM
// and SMS integrations.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// MessageSender is the part of *sqs.Client the notifier uses.
type MessageSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type pushMessage struct {
	CourierID string            `json:"courier_id"`
	Tokens    []string          `json:"tokens"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

type codeMessage struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

var (
	_ ports.PushNotifier = (*SQSNotifier)(nil)
	_ ports.CodeSender   = (*SQSNotifier)(nil)
)

type SQSNotifier struct {
	client       MessageSender
	pushQueueURL string
	smsQueueURL  string
}

func NewSQSNotifier(client MessageSender, pushQueueURL, smsQueueURL string) *SQSNotifier {
	return &SQSNotifier{
		client:       client,
		pushQueueURL: pushQueueURL,
		smsQueueURL:  smsQueueURL,
	}
}

// Notify enqueues one message per call. Couriers without devices are skipped.
func (n *SQSNotifier) Notify(ctx context.Context, courierID kernel.UUID, tokens []string, msg ports.PushNotification) error {
	if len(tokens) == 0 {
		return nil
	}

	return n.send(ctx, n.pushQueueURL, "push", pushMessage{
		CourierID: courierID.String(),
		Tokens:    tokens,
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      msg.Data,
	})
}

func (n *SQSNotifier) SendCode(ctx context.Context, phone kernel.Phone, code string) error {
	return n.send(ctx, n.smsQueueURL, "sms", codeMessage{Phone: phone.String(), Code: code})
}

func (n *SQSNotifier) send(ctx context.Context, queueURL, kind string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message for SQS: %w", kind, err)
	}

	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"kind": {DataType: aws.String("String"), StringValue: aws.String(kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s message to SQS: %w", kind, err)
	}
	return nil
}
