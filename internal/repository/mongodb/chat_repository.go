package mongodb

import (
	"context"
	"errors"
	"time"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindById(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) (*entity.ChatSession, error)
	FindAllByProjectAndUser(ctx context.Context, projectId uuid.UUID, userId int64) ([]*entity.ChatSession, error)
	UpdateTitle(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID, title string) error
	Delete(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) error
}

type chatRepo struct {
	db *mongo.Database
}

func NewChatRepository(db *mongo.Database) ChatRepository {
	return &chatRepo{db: db}
}

// collection resolves the session partition for a project. All sessions of one
// project land in the same collection, so project-scoped listings stay cheap.
func (r *chatRepo) collection(projectId uuid.UUID) *mongo.Collection {
	name := partitionName(constant.ChatCollectionPrefix, projectId, constant.ChatCollectionCount)
	return r.db.Collection(name)
}

func (r *chatRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection(session.ProjectId).InsertOne(ctx, session)
	return err
}

func (r *chatRepo) FindById(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) (*entity.ChatSession, error) {
	var session entity.ChatSession
	err := r.collection(projectId).FindOne(ctx, bson.M{"_id": chatId, "project_id": projectId}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepo) FindAllByProjectAndUser(ctx context.Context, projectId uuid.UUID, userId int64) ([]*entity.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(projectId).Find(ctx, bson.M{"project_id": projectId, "user_id": userId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*entity.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *chatRepo) UpdateTitle(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID, title string) error {
	_, err := r.collection(projectId).UpdateOne(ctx,
		bson.M{"_id": chatId, "project_id": projectId},
		bson.M{"$set": bson.M{"title": title}},
	)
	return err
}

func (r *chatRepo) Delete(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) error {
	_, err := r.collection(projectId).DeleteOne(ctx, bson.M{"_id": chatId, "project_id": projectId})
	return err
}
