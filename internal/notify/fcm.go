package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/logx"
)

// MaxMulticastTokens is the FCM limit of tokens per multicast call.
const MaxMulticastTokens = 500

type multicastClient interface {
	SendEachForMulticast(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCM sends notifications through Firebase Cloud Messaging.
type FCM struct {
	client multicastClient
	logger logx.Logger
}

// NewFCM creates an FCM sender from a service account credentials file.
// An empty path uses application default credentials.
func NewFCM(ctx context.Context, credentialsFile string, logger logx.Logger) (*FCM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return NewFCMWithClient(client, logger), nil
}

// NewFCMWithClient wraps an existing multicast client.
func NewFCMWithClient(client multicastClient, logger logx.Logger) *FCM {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FCM{client: client, logger: logger}
}

// Send delivers msg to all tokens. Tokens are split into multicast batches of
// MaxMulticastTokens. Rejected tokens are counted, not returned as errors.
func (f *FCM) Send(ctx context.Context, tokens []string, msg Message) (SendResult, error) {
	var total SendResult
	for start := 0; start < len(tokens); start += MaxMulticastTokens {
		end := start + MaxMulticastTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		resp, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		})
		if err != nil {
			return total, fmt.Errorf("fcm multicast: %w: %w", apperr.Unavailable, err)
		}

		total.Add(SendResult{SuccessCount: resp.SuccessCount, FailureCount: resp.FailureCount})
		if resp.FailureCount > 0 {
			f.logger.Warn("fcm rejected tokens",
				logx.Int("failed", resp.FailureCount),
				logx.Int("batch", len(batch)),
				logx.String("first_error", firstError(resp)),
			)
		}
	}
	return total, nil
}

func firstError(resp *messaging.BatchResponse) string {
	for _, r := range resp.Responses {
		if r != nil && r.Error != nil {
			return r.Error.Error()
		}
	}
	return ""
}
