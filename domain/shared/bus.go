package shared

import (
	"context"
	"errors"
	"fmt"
)

// DeliveryMode selects how a handler receives events.
type DeliveryMode int

const (
	// DeliverSync runs the handler inline with Publish. A failure propagates
	// to the publisher, so sync registration is reserved for effects that are
	// safe to fail alongside the triggering write.
	DeliverSync DeliveryMode = iota

	// DeliverDeferred enqueues the envelope on the durable queue; a worker
	// dispatches it out of band. Delivery is at-least-once, so deferred
	// handlers must be idempotent.
	DeliverDeferred
)

func (m DeliveryMode) String() string {
	switch m {
	case DeliverSync:
		return "sync"
	case DeliverDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// EventHandler consumes event envelopes. Handlers are keyed by event name,
// never by concrete event type: a subscribing context depends only on the
// name and the payload shape, not on the publisher's Go types.
type EventHandler interface {
	// Name identifies the handler in logs and in the idempotency ledger.
	Name() string

	Handle(ctx context.Context, env EventEnvelope) error
}

// EventQueue is the durable at-least-once queue feeding deferred handlers.
// The transactional outbox implements it in production.
type EventQueue interface {
	Enqueue(ctx context.Context, env EventEnvelope) error
}

// HandlerFailure wraps a synchronous handler error so the publisher can tell
// a handler failure apart from a publish-infrastructure failure.
type HandlerFailure struct {
	EventName   string
	HandlerName string
	Err         error
}

func (f *HandlerFailure) Error() string {
	return fmt.Sprintf("handler %s failed for event %s: %v", f.HandlerName, f.EventName, f.Err)
}

func (f *HandlerFailure) Unwrap() error { return f.Err }

type registration struct {
	handler EventHandler
	mode    DeliveryMode
}

// EventBus routes published domain events to independently registered
// handlers. Registration is a one-time, order-preserving setup step executed
// before any event is published; Seal() freezes the registry, after which
// concurrent Publish calls need no locking because the registry is read-only.
type EventBus struct {
	registry map[string][]registration
	queue    EventQueue
	sealed   bool
}

// NewEventBus creates a bus whose deferred deliveries go through queue.
// A nil queue is allowed only if no deferred handler is ever registered.
func NewEventBus(queue EventQueue) *EventBus {
	return &EventBus{
		registry: make(map[string][]registration),
		queue:    queue,
	}
}

// Subscribe binds a handler to an event name with a delivery mode. It must be
// called during process initialization, before Seal.
func (b *EventBus) Subscribe(eventName string, handler EventHandler, mode DeliveryMode) error {
	if b.sealed {
		return fmt.Errorf("event bus is sealed; handlers register only during initialization")
	}
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if mode == DeliverDeferred && b.queue == nil {
		return fmt.Errorf("cannot register deferred handler %s: bus has no queue", handler.Name())
	}
	for _, r := range b.registry[eventName] {
		if r.handler.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}
	b.registry[eventName] = append(b.registry[eventName], registration{handler: handler, mode: mode})
	return nil
}

// Seal freezes the registry. Publish panics if called before Seal, which
// turns "registered during request handling" bugs into an immediate failure
// instead of a data race.
func (b *EventBus) Seal() {
	b.sealed = true
}

// Publish delivers an event to every handler registered for its name.
//
// Deferred handlers are served first by a single enqueue of the envelope
// (one queue entry fans out to all deferred handlers at dispatch time), so a
// later sync-handler failure can never lose the durable copy. Sync handlers
// then run inline in registration order; the first failure stops the chain
// and propagates to the publisher.
func (b *EventBus) Publish(ctx context.Context, event DomainEvent) error {
	if !b.sealed {
		panic("EventBus.Publish called before Seal")
	}
	env, err := NewEventEnvelope(event)
	if err != nil {
		return err
	}

	regs := b.registry[env.Name]

	hasDeferred := false
	for _, r := range regs {
		if r.mode == DeliverDeferred {
			hasDeferred = true
			break
		}
	}
	if hasDeferred {
		if err := b.queue.Enqueue(ctx, env); err != nil {
			return fmt.Errorf("enqueue %s: %w", env.Name, err)
		}
	}

	for _, r := range regs {
		if r.mode != DeliverSync {
			continue
		}
		if err := r.handler.Handle(ctx, env); err != nil {
			return &HandlerFailure{EventName: env.Name, HandlerName: r.handler.Name(), Err: err}
		}
	}
	return nil
}

// DispatchDeferred invokes every deferred handler registered for the
// envelope's name, in registration order. Failures are isolated per handler:
// each failing handler is reported but the rest still run. The joined error
// tells the queue worker to schedule a re-delivery, which is why deferred
// handlers must tolerate seeing the same envelope again.
func (b *EventBus) DispatchDeferred(ctx context.Context, env EventEnvelope) error {
	if !b.sealed {
		panic("EventBus.DispatchDeferred called before Seal")
	}
	var errs []error
	for _, r := range b.registry[env.Name] {
		if r.mode != DeliverDeferred {
			continue
		}
		if err := r.handler.Handle(ctx, env); err != nil {
			errs = append(errs, &HandlerFailure{EventName: env.Name, HandlerName: r.handler.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

// FuncHandler adapts a function to EventHandler, mostly for tests and small
// in-process subscribers like the audit logger.
type FuncHandler struct {
	name string
	fn   func(ctx context.Context, env EventEnvelope) error
}

func NewFuncHandler(name string, fn func(ctx context.Context, env EventEnvelope) error) *FuncHandler {
	return &FuncHandler{name: name, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, env EventEnvelope) error { return h.fn(ctx, env) }
func (h *FuncHandler) Name() string                                        { return h.name }
