package kafka

import "context"

// Publisher 面向业务层的菜谱事件发布封装，绑定具体 topic
type Publisher struct {
	topic string
}

func NewPublisher(topic string) *Publisher {
	return &Publisher{topic: topic}
}

// PublishRecipeEvent 发布一条菜谱生命周期事件
func (p *Publisher) PublishRecipeEvent(ctx context.Context, eventType string, recipeID, authorID int64) error {
	return SendRecipeEvent(ctx, p.topic, &RecipeEvent{
		Type:     eventType,
		RecipeID: recipeID,
		AuthorID: authorID,
	})
}
