package mongodb

import (
	"context"
	"time"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	Append(ctx context.Context, message *entity.ChatMessage) error
	FindAllByChatId(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error)
	// DeleteLastN removes the newest n messages of a session. Used by the
	// post-answer policy hook to roll a rejected turn back.
	DeleteLastN(ctx context.Context, chatId uuid.UUID, n int) error
	DeleteByChatId(ctx context.Context, chatId uuid.UUID) error
}

type messageRepo struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepo{db: db}
}

// collection resolves the message partition for a session. All messages of one
// session share a collection so history reads never fan out.
func (r *messageRepo) collection(chatId uuid.UUID) *mongo.Collection {
	name := partitionName(constant.MsgCollectionPrefix, chatId, constant.MsgCollectionCount)
	return r.db.Collection(name)
}

func (r *messageRepo) Append(ctx context.Context, message *entity.ChatMessage) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection(message.ChatId).InsertOne(ctx, message)
	return err
}

func (r *messageRepo) FindAllByChatId(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error) {
	// Ascending creation order is the conversation order the model sees.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection(chatId).Find(ctx, bson.M{"chat_id": chatId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) DeleteLastN(ctx context.Context, chatId uuid.UUID, n int) error {
	if n <= 0 {
		return nil
	}
	col := r.collection(chatId)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(n)).
		SetProjection(bson.M{"_id": 1})
	cursor, err := col.Find(ctx, bson.M{"chat_id": chatId}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Id uuid.UUID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(docs))
	for i, d := range docs {
		ids[i] = d.Id
	}
	_, err = col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (r *messageRepo) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	_, err := r.collection(chatId).DeleteMany(ctx, bson.M{"chat_id": chatId})
	return err
}
