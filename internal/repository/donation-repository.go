package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/asre459/menna/internal/models"
)

type DonationRepository struct {
	collection *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{
		collection: db.Collection("donations"),
	}
}

// MethodTotal is one by-method aggregation bucket. The field names mirror the
// aggregation output so the API can return them as-is.
type MethodTotal struct {
	Method string  `bson:"_id" json:"_id"`
	Total  float64 `bson:"total" json:"total"`
	Count  int64   `bson:"count" json:"count"`
}

// DailyTotal is one per-day aggregation bucket keyed by YYYY-MM-DD.
type DailyTotal struct {
	Date   string  `bson:"_id" json:"_id"`
	Amount float64 `bson:"amount" json:"amount"`
	Count  int64   `bson:"count" json:"count"`
}

type amountTotal struct {
	Total float64 `bson:"total"`
}

func (r *DonationRepository) Insert(ctx context.Context, donation *models.Donation) error {
	if donation.ID.IsZero() {
		donation.ID = bson.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, donation)
	return err
}

func (r *DonationRepository) FindByDonationID(ctx context.Context, donationID string) (*models.Donation, error) {
	var donation models.Donation
	err := r.collection.FindOne(ctx, bson.M{"donationId": donationID}).Decode(&donation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// FindAll lists donations newest first. An empty status means no filter.
func (r *DonationRepository) FindAll(ctx context.Context, status string, page, limit int) ([]*models.Donation, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donations := []*models.Donation{}
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *DonationRepository) Count(ctx context.Context, status string) (int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return r.collection.CountDocuments(ctx, query)
}

// UpdateStatus overwrites the status field and returns the updated document,
// or nil when no donation matches the id.
func (r *DonationRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Donation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var donation models.Donation
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&donation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// CompletedTotal sums completed donation amounts created at or after since.
// A zero since covers all time.
func (r *DonationRepository) CompletedTotal(ctx context.Context, since time.Time) (float64, error) {
	match := bson.M{"status": models.StatusCompleted}
	if !since.IsZero() {
		match["createdAt"] = bson.M{"$gte": since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	return r.singleTotal(ctx, pipeline)
}

// TotalAmount sums all donation amounts regardless of status.
func (r *DonationRepository) TotalAmount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	return r.singleTotal(ctx, pipeline)
}

func (r *DonationRepository) singleTotal(ctx context.Context, pipeline mongo.Pipeline) (float64, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []amountTotal
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// CompletedByMethod groups completed donations since the given time by
// payment method.
func (r *DonationRepository) CompletedByMethod(ctx context.Context, since time.Time) ([]MethodTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.StatusCompleted,
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$method",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []MethodTotal{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CompletedDaily buckets completed donations since the given time by calendar
// day, sorted ascending for charting.
func (r *DonationRepository) CompletedDaily(ctx context.Context, since time.Time) ([]DailyTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    models.StatusCompleted,
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"amount": bson.M{"$sum": "$amount"},
			"count":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []DailyTotal{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
