package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// UserCreated is triggered when a back-office account is created
	UserCreated EventType = "user.created"
	// DonationCreated is triggered when a donor submits a new donation
	DonationCreated EventType = "donation.created"
	// DonationStatusChanged is triggered when an admin updates a donation's status
	DonationStatusChanged EventType = "donation.status.changed"
	// MediaUploaded is triggered when a media asset is uploaded
	MediaUploaded EventType = "media.uploaded"
	// MediaDeleted is triggered when a media asset is deleted
	MediaDeleted EventType = "media.deleted"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

func newBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Version:   "1.0",
	}
}

type UserCreatedEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserCreatedEvent(userID, username, role string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: newBaseEvent(UserCreated),
		UserID:    userID,
		Username:  username,
		Role:      role,
	}
}

func (e *UserCreatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type DonationCreatedEvent struct {
	BaseEvent
	DonationID string  `json:"donation_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
}

func NewDonationCreatedEvent(donationID string, amount float64, method string) *DonationCreatedEvent {
	return &DonationCreatedEvent{
		BaseEvent:  newBaseEvent(DonationCreated),
		DonationID: donationID,
		Amount:     amount,
		Method:     method,
	}
}

func (e *DonationCreatedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type DonationStatusChangedEvent struct {
	BaseEvent
	DonationID string `json:"donation_id"`
	Status     string `json:"status"`
}

func NewDonationStatusChangedEvent(donationID, status string) *DonationStatusChangedEvent {
	return &DonationStatusChangedEvent{
		BaseEvent:  newBaseEvent(DonationStatusChanged),
		DonationID: donationID,
		Status:     status,
	}
}

func (e *DonationStatusChangedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type MediaUploadedEvent struct {
	BaseEvent
	MediaID   string `json:"media_id"`
	MediaType string `json:"media_type"`
	Filename  string `json:"filename"`
}

func NewMediaUploadedEvent(mediaID, mediaType, filename string) *MediaUploadedEvent {
	return &MediaUploadedEvent{
		BaseEvent: newBaseEvent(MediaUploaded),
		MediaID:   mediaID,
		MediaType: mediaType,
		Filename:  filename,
	}
}

func (e *MediaUploadedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type MediaDeletedEvent struct {
	BaseEvent
	MediaID string `json:"media_id"`
}

func NewMediaDeletedEvent(mediaID string) *MediaDeletedEvent {
	return &MediaDeletedEvent{
		BaseEvent: newBaseEvent(MediaDeleted),
		MediaID:   mediaID,
	}
}

func (e *MediaDeletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// generateEventID generates a unique ID for an event
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
