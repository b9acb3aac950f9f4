package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryOrder(t *testing.T) {
	var registry Registry[func()]
	var calls []int
	registry.Subscribe(func() { calls = append(calls, 1) })
	registry.Subscribe(func() { calls = append(calls, 2) })
	registry.Subscribe(func() { calls = append(calls, 3) })

	for _, handler := range registry.Snapshot() {
		handler()
	}
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestRegistryUnsubscribe(t *testing.T) {
	var registry Registry[func()]
	token := registry.Subscribe(func() {})
	registry.Subscribe(func() {})
	assert.Equal(t, 2, registry.Len())

	registry.Unsubscribe(token)
	assert.Equal(t, 1, registry.Len())

	// Unknown token is a no-op.
	registry.Unsubscribe(999)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistrySubscribeFromHandler(t *testing.T) {
	var registry Registry[func()]
	var nested bool
	registry.Subscribe(func() {
		registry.Subscribe(func() { nested = true })
	})

	// Invocation over a snapshot must not deadlock when the handler
	// registers another handler.
	for _, handler := range registry.Snapshot() {
		handler()
	}
	assert.False(t, nested)
	assert.Equal(t, 2, registry.Len())

	for _, handler := range registry.Snapshot() {
		handler()
	}
	assert.True(t, nested)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	var registry Registry[int]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			registry.Subscribe(v)
			_ = registry.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, registry.Len())
}
