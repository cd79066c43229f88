package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishUserCreated(ctx context.Context, userID, username, role string) error
	PublishDonationCreated(ctx context.Context, donationID string, amount float64, method string) error
	PublishDonationStatusChanged(ctx context.Context, donationID, status string) error
	PublishMediaUploaded(ctx context.Context, mediaID, mediaType, filename string) error
	PublishMediaDeleted(ctx context.Context, mediaID string) error

	// Close closes the publisher and releases resources
	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

// NewEventPublisher connects to RabbitMQ. An empty URI disables publishing;
// every Publish* call then becomes a no-op.
func NewEventPublisher(rabbitURI string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			rabbitMQ: nil,
			enabled:  false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI)
	if err != nil {
		return nil, err
	}

	err = client.setupExchanges()
	if err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) publish(exchange string, eventType EventType, body []byte, err error) error {
	if err != nil {
		return err
	}
	if err := p.rabbitMQ.PublishEvent(exchange, string(eventType), body); err != nil {
		return err
	}
	log.Printf("Published %s event", eventType)
	return nil
}

func (p *EventPublisher) PublishUserCreated(ctx context.Context, userID, username, role string) error {
	if !p.enabled {
		return nil
	}
	body, err := NewUserCreatedEvent(userID, username, role).ToJSON()
	return p.publish("user-events", UserCreated, body, err)
}

func (p *EventPublisher) PublishDonationCreated(ctx context.Context, donationID string, amount float64, method string) error {
	if !p.enabled {
		return nil
	}
	body, err := NewDonationCreatedEvent(donationID, amount, method).ToJSON()
	return p.publish("donation-events", DonationCreated, body, err)
}

func (p *EventPublisher) PublishDonationStatusChanged(ctx context.Context, donationID, status string) error {
	if !p.enabled {
		return nil
	}
	body, err := NewDonationStatusChangedEvent(donationID, status).ToJSON()
	return p.publish("donation-events", DonationStatusChanged, body, err)
}

func (p *EventPublisher) PublishMediaUploaded(ctx context.Context, mediaID, mediaType, filename string) error {
	if !p.enabled {
		return nil
	}
	body, err := NewMediaUploadedEvent(mediaID, mediaType, filename).ToJSON()
	return p.publish("media-events", MediaUploaded, body, err)
}

func (p *EventPublisher) PublishMediaDeleted(ctx context.Context, mediaID string) error {
	if !p.enabled {
		return nil
	}
	body, err := NewMediaDeletedEvent(mediaID).ToJSON()
	return p.publish("media-events", MediaDeleted, body, err)
}

// Close releases resources
func (p *EventPublisher) Close() error {
	if !p.enabled || p.rabbitMQ == nil {
		return nil
	}

	return p.rabbitMQ.Close()
}
