// Package kafka は通知作成イベントを Kafka へ配信します。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
)

const (
	eventNotificationCreated = "notification.created"
	batchTimeout             = 10 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationCreatedEvent は配信されるイベントの本体です。
type NotificationCreatedEvent struct {
	Type         string                  `json:"type"`
	Notification onboarding.Notification `json:"notification"`
}

// Publisher は onboarding.Publisher の Kafka 実装です。
type Publisher struct {
	logger *zap.Logger
	w      messageWriter
	topic  string
}

// NewPublisher は brokers へ書き込む Publisher を生成します。
func NewPublisher(logger *zap.Logger, brokers []string, topic string) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("kafka").With(zap.String("topic", topic))
	return newPublisher(logger, newWriter(logger, brokers), topic)
}

// newWriter は非同期の kafka.Writer を生成します。
// WriteMessages はバッチの送信を待たずに戻り、配信失敗は Completion でログに残します。
func newWriter(logger *zap.Logger, brokers []string) *kafka.Writer {
	sugar := logger.Sugar()
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		BatchTimeout:           batchTimeout,
		Logger:                 kafka.LoggerFunc(sugar.Debugf),
		ErrorLogger:            kafka.LoggerFunc(sugar.Errorf),
		AllowAutoTopicCreation: true,
		Completion: func(msgs []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, m := range msgs {
				logger.Warn("notification event delivery failed",
					zap.String("user_email", string(m.Key)),
					zap.Error(err))
			}
		},
	}
}

func newPublisher(logger *zap.Logger, w messageWriter, topic string) *Publisher {
	return &Publisher{logger: logger, w: w, topic: topic}
}

// NotificationCreated は通知作成イベントを書き込みます。キーは宛先メールアドレスです。
// 非同期 writer ではキューへの投入までを待ち、ブローカーへの配信結果は待ちません。
func (p *Publisher) NotificationCreated(ctx context.Context, n onboarding.Notification) error {
	b, err := json.Marshal(NotificationCreatedEvent{Type: eventNotificationCreated, Notification: n})
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(n.UserEmail),
		Value: b,
	}); err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}

	p.logger.Debug("notification event queued",
		zap.String("notification_id", n.ID),
		zap.String("user_email", n.UserEmail),
	)
	return nil
}

// Close は writer を閉じます。
func (p *Publisher) Close() {
	if err := p.w.Close(); err != nil {
		p.logger.Error("close kafka writer", zap.Error(err))
	}
}
