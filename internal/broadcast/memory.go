package broadcast

import "sync"

// Memory stores broadcast messages in-memory for tests.
type Memory struct {
	mu   sync.Mutex
	msgs []string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Broadcast(msg string) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
}

func (m *Memory) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.msgs))
	copy(out, m.msgs)
	return out
}
