//go:build unit

package dhcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientAdapter(t *testing.T) {
	adapter := NewClientAdapter()
	assert.NotNil(t, adapter)
}

func TestClientAdapter_RequestLease_NonExistentInterface(t *testing.T) {
	adapter := NewClientAdapter()

	// Client creation binds to the interface, so a non-existent one fails
	// before anything goes on the wire.
	_, err := adapter.RequestLease(context.Background(), "nonexistent0", time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create DHCP client")
}

// A full DISCOVER/OFFER/REQUEST/ACK exchange needs a DHCP server and a real
// interface; that path is covered by integration tests.
