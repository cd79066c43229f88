package config

import (
	"os"
	"testing"
)

func TestLoadServiceIdentity(t *testing.T) {
	t.Setenv("SERVICE_NAME", "donation-api")
	t.Setenv("HOSTNAME", "node-2")

	cfg := Load()

	if cfg.Server.ServiceName != "donation-api" {
		t.Errorf("Expected service name donation-api, got %s", cfg.Server.ServiceName)
	}
	if cfg.Server.ServiceID != "donation-api-node-2" {
		t.Errorf("Expected service ID donation-api-node-2, got %s", cfg.Server.ServiceID)
	}
	if cfg.Consul.ServiceName != cfg.Server.ServiceName {
		t.Errorf("Consul service name %s diverges from server %s", cfg.Consul.ServiceName, cfg.Server.ServiceName)
	}
	if cfg.Consul.ServiceID != cfg.Server.ServiceID {
		t.Errorf("Consul service ID %s diverges from server %s", cfg.Consul.ServiceID, cfg.Server.ServiceID)
	}
}

func TestLoadServiceIdentityDefaults(t *testing.T) {
	// t.Setenv registers the restore; unset so the defaults apply.
	t.Setenv("SERVICE_NAME", "x")
	t.Setenv("HOSTNAME", "x")
	os.Unsetenv("SERVICE_NAME")
	os.Unsetenv("HOSTNAME")

	cfg := Load()

	if cfg.Server.ServiceName != "donation-service" {
		t.Errorf("Expected default service name donation-service, got %s", cfg.Server.ServiceName)
	}
	if cfg.Server.ServiceID != "donation-service-1" {
		t.Errorf("Expected default service ID donation-service-1, got %s", cfg.Server.ServiceID)
	}
}
