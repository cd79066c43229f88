package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type DonationItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Donation is a single donation record. DonationID is the public reference
// handed to donors; TransactionID is filled in by the payment provider.
type Donation struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	DonationID    string         `bson:"donationId" json:"donationId"`
	Name          string         `bson:"name,omitempty" json:"name,omitempty"`
	Amount        float64        `bson:"amount" json:"amount"`
	Email         string         `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Method        string         `bson:"method" json:"method"`
	Status        string         `bson:"status" json:"status"`
	Items         []DonationItem `bson:"items,omitempty" json:"items,omitempty"`
	TransactionID string         `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}
