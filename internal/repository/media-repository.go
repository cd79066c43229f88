package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/asre459/menna/internal/models"
)

type MediaRepository struct {
	collection *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{
		collection: db.Collection("media"),
	}
}

func (r *MediaRepository) Insert(ctx context.Context, media *models.Media) error {
	if media.ID.IsZero() {
		media.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, media)
	return err
}

func (r *MediaRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Media, error) {
	var media models.Media
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Media, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	media := []*models.Media{}
	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}

	return media, nil
}

func (r *MediaRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MediaRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
