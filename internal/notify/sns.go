package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/logx"
)

type snsPublisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes notifications to AWS SNS platform endpoints.
// Tokens are platform endpoint ARNs.
type SNS struct {
	client snsPublisher
	logger logx.Logger
}

// NewSNS creates an SNS sender from the default AWS configuration chain.
func NewSNS(ctx context.Context, logger logx.Logger) (*SNS, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewSNSWithClient(sns.NewFromConfig(cfg), logger), nil
}

// NewSNSWithClient wraps an existing SNS client.
func NewSNSWithClient(client snsPublisher, logger logx.Logger) *SNS {
	if logger == nil {
		logger = logx.Nop()
	}
	return &SNS{client: client, logger: logger}
}

// Send publishes msg to every endpoint. SNS has no multicast, so each endpoint is
// one publish; failed endpoints are counted. Only a cancelled or expired context
// is returned as an error.
func (s *SNS) Send(ctx context.Context, tokens []string, msg Message) (SendResult, error) {
	payload, err := snsPayload(msg)
	if err != nil {
		return SendResult{}, err
	}

	var res SendResult
	for _, arn := range tokens {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("sns publish: %w: %w", apperr.Unavailable, err)
		}
		_, err := s.client.Publish(ctx, &sns.PublishInput{
			TargetArn:        aws.String(arn),
			Message:          aws.String(payload),
			MessageStructure: aws.String("json"),
		})
		if err != nil {
			res.FailureCount++
			s.logger.Warn("sns publish failed", logx.String("endpoint", arn), logx.Err(err))
			continue
		}
		res.SuccessCount++
	}
	return res, nil
}

type gcmPayload struct {
	Notification map[string]string `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type apnsPayload struct {
	APS  map[string]any    `json:"aps"`
	Data map[string]string `json:"data,omitempty"`
}

func snsPayload(msg Message) (string, error) {
	gcm, err := json.Marshal(gcmPayload{
		Notification: map[string]string{"title": msg.Title, "body": msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return "", err
	}
	apns, err := json.Marshal(apnsPayload{
		APS:  map[string]any{"alert": map[string]string{"title": msg.Title, "body": msg.Body}},
		Data: msg.Data,
	})
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(map[string]string{
		"default": msg.Body,
		"GCM":     string(gcm),
		"APNS":    string(apns),
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
