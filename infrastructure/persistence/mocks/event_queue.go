package mocks

import (
	"context"
	"sync"

	"podmarket/domain/shared"
)

// EventQueue 持久化事件队列的内存实现，按顺序记录入队的信封。
type EventQueue struct {
	mu        sync.Mutex
	envelopes []shared.EventEnvelope

	// Err 非空时 Enqueue 直接失败，用于模拟 outbox 写入失败
	Err error
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) Enqueue(ctx context.Context, env shared.EventEnvelope) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.envelopes = append(q.envelopes, env)
	return nil
}

// Envelopes returns a copy of everything enqueued so far.
func (q *EventQueue) Envelopes() []shared.EventEnvelope {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]shared.EventEnvelope, len(q.envelopes))
	copy(out, q.envelopes)
	return out
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.envelopes)
}

var _ shared.EventQueue = (*EventQueue)(nil)
