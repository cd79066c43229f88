package events

import (
	"strings"
	"sync"
	"testing"
)

func TestPublishEventRequiresConnection(t *testing.T) {
	client := &RabbitMQClient{connectionURI: "amqp://localhost:5672"}

	err := client.PublishEvent("donation-events", "donation.created", []byte(`{}`))
	if err == nil {
		t.Fatal("Expected an error when publishing without a connection")
	}
	if !strings.Contains(err.Error(), "not connected") {
		t.Errorf("Expected a not-connected error, got %v", err)
	}
}

func TestConnectionFlagIsSafeUnderConcurrency(t *testing.T) {
	client := &RabbitMQClient{connectionURI: "amqp://localhost:5672"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			client.isConnected.Store(false)
		}()
		go func() {
			defer wg.Done()
			_ = client.PublishEvent("donation-events", "donation.created", []byte(`{}`))
		}()
	}
	wg.Wait()

	if client.isConnected.Load() {
		t.Error("Expected the client to report disconnected")
	}
}
