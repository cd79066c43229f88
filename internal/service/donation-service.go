package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/events"
	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/repository"
)

type DonationService struct {
	donationRepo   *repository.DonationRepository
	eventPublisher events.Publisher
}

func NewDonationService(donationRepo *repository.DonationRepository, eventPublisher events.Publisher) *DonationService {
	return &DonationService{
		donationRepo:   donationRepo,
		eventPublisher: eventPublisher,
	}
}

// DashboardStats aggregates the admin dashboard overview numbers.
type DashboardStats struct {
	TotalDonations  float64 `json:"totalDonations"`
	RecentDonations float64 `json:"recentDonations"`
	MediaCount      int64   `json:"mediaCount"`
	UserCount       int64   `json:"userCount"`
}

type DonationSummary struct {
	TotalAmount    float64 `json:"totalAmount"`
	CompletedCount int64   `json:"completedCount"`
	PendingCount   int64   `json:"pendingCount"`
	FailedCount    int64   `json:"failedCount"`
}

type DonationAnalytics struct {
	TotalAmount float64                  `json:"totalAmount"`
	ByMethod    []repository.MethodTotal `json:"byMethod"`
	Daily       []repository.DailyTotal  `json:"daily"`
}

// Create records a new donation in the pending state and hands back the
// public donation reference.
func (ds *DonationService) Create(ctx context.Context, donation *models.Donation) error {
	donation.ID = bson.NewObjectID()
	donation.DonationID = uuid.NewString()
	donation.Status = models.StatusPending
	donation.CreatedAt = time.Now()

	if err := ds.donationRepo.Insert(ctx, donation); err != nil {
		return err
	}

	if err := ds.eventPublisher.PublishDonationCreated(ctx, donation.DonationID, donation.Amount, donation.Method); err != nil {
		log.Printf("Warning: Failed to publish donation created event: %v", err)
	}
	return nil
}

func (ds *DonationService) FindByDonationID(ctx context.Context, donationID string) (*models.Donation, error) {
	donation, err := ds.donationRepo.FindByDonationID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, ErrNotFound
	}
	return donation, nil
}

// List returns donations newest first. Status "all" or "" lists everything.
func (ds *DonationService) List(ctx context.Context, status string, page, limit int) ([]*models.Donation, int64, error) {
	if status == "all" {
		status = ""
	}

	donations, err := ds.donationRepo.FindAll(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := ds.donationRepo.Count(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

// UpdateStatus overwrites a donation's status. The value must be one of the
// known states; no transition graph is enforced beyond that.
func (ds *DonationService) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Donation, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	donation, err := ds.donationRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, ErrNotFound
	}

	if err := ds.eventPublisher.PublishDonationStatusChanged(ctx, donation.DonationID, status); err != nil {
		log.Printf("Warning: Failed to publish donation status event: %v", err)
	}
	return donation, nil
}

func (ds *DonationService) Summary(ctx context.Context) (*DonationSummary, error) {
	totalAmount, err := ds.donationRepo.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := ds.donationRepo.Count(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := ds.donationRepo.Count(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	failed, err := ds.donationRepo.Count(ctx, models.StatusFailed)
	if err != nil {
		return nil, err
	}

	return &DonationSummary{
		TotalAmount:    totalAmount,
		CompletedCount: completed,
		PendingCount:   pending,
		FailedCount:    failed,
	}, nil
}

// Analytics aggregates completed donations over the given window.
func (ds *DonationService) Analytics(ctx context.Context, days int) (*DonationAnalytics, error) {
	since := time.Now().AddDate(0, 0, -days)

	total, err := ds.donationRepo.CompletedTotal(ctx, since)
	if err != nil {
		return nil, err
	}
	byMethod, err := ds.donationRepo.CompletedByMethod(ctx, since)
	if err != nil {
		return nil, err
	}
	daily, err := ds.donationRepo.CompletedDaily(ctx, since)
	if err != nil {
		return nil, err
	}

	return &DonationAnalytics{
		TotalAmount: total,
		ByMethod:    byMethod,
		Daily:       daily,
	}, nil
}

// AnalyticsPeriodDays maps an API period string onto a day count, defaulting
// to 30 days for anything unrecognized.
func AnalyticsPeriodDays(period string) int {
	switch period {
	case "7d":
		return 7
	case "30d":
		return 30
	case "90d":
		return 90
	default:
		return 30
	}
}

func (ds *DonationService) CompletedTotal(ctx context.Context, since time.Time) (float64, error) {
	return ds.donationRepo.CompletedTotal(ctx, since)
}
