package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodgram-go/internal/config"
	"foodgram-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// 菜谱事件类型
const (
	RecipeEventCreated = "created"
	RecipeEventUpdated = "updated"
	RecipeEventDeleted = "deleted"
)

// RecipeEvent 菜谱生命周期事件消息体，worker 据此更新搜索索引
type RecipeEvent struct {
	Type     string `json:"type"`
	RecipeID int64  `json:"recipe_id"`
	AuthorID int64  `json:"author_id,omitempty"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendRecipeEvent 发送菜谱事件到 Kafka
// 以菜谱ID作为消息 Key，保证同一菜谱的事件顺序
func SendRecipeEvent(ctx context.Context, topic string, event *RecipeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("recipe-%d", event.RecipeID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send recipe event: %w", err)
	}

	logger.Info("Recipe event sent",
		zap.Int64("recipe_id", event.RecipeID),
		zap.String("type", event.Type),
		zap.String("topic", topic),
	)

	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
