package mqtt

import (
	"encoding/json"
	"sync"
)

// MockPublisher records published payloads for tests.
type MockPublisher struct {
	mu       sync.Mutex
	Messages map[string][][]byte
}

// NewMockPublisher returns an empty mock.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Messages: make(map[string][][]byte)}
}

// Publish stores the JSON-encoded payload under the topic.
func (m *MockPublisher) Publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages[topic] = append(m.Messages[topic], data)
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
