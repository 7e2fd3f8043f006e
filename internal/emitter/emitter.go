package emitter

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/logger"
)

// Sink consumes registrar events. Sinks run after the originating operation
// has committed; a sink failure is logged, never propagated back into the
// registry transition.
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Sink=MockSink,Emitter=MockEmitter
type Sink interface {
	// HandleEvent processes a single registrar event
	HandleEvent(ctx context.Context, event domain.Event) error
}

// Emitter fans registrar events out to the configured sinks.
type Emitter interface {
	// Emit dispatches an event to every sink
	Emit(ctx context.Context, event domain.Event)
	// Close stops the emitter after draining in-flight dispatches
	Close()
}

// poolEmitter dispatches events on a bounded worker pool so slow sinks
// (broker, database) never stall the registry's request path.
type poolEmitter struct {
	pool  pond.Pool
	sinks []Sink
}

// New creates an emitter dispatching to the given sinks with the given
// number of workers.
func New(workers int, sinks ...Sink) Emitter {
	if workers <= 0 {
		workers = 4
	}
	return &poolEmitter{
		pool:  pond.NewPool(workers),
		sinks: sinks,
	}
}

// NewNoop creates an emitter that discards every event.
func NewNoop() Emitter {
	return New(1)
}

// Emit dispatches an event to every sink
func (e *poolEmitter) Emit(ctx context.Context, event domain.Event) {
	// detach from the request context so cancellation after commit does not
	// drop the event
	ctx = context.WithoutCancel(ctx)

	for _, sink := range e.sinks {
		s := sink
		e.pool.Submit(func() {
			if err := s.HandleEvent(ctx, event); err != nil {
				logger.Error(err,
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.String("namespace", event.Namespace),
				)
			}
		})
	}
}

// Close stops the emitter after draining in-flight dispatches
func (e *poolEmitter) Close() {
	e.pool.StopAndWait()
}

// PublisherSink adapts a messaging publisher into a Sink.
type PublisherSink struct {
	publish func(ctx context.Context, event domain.Event) error
}

// NewPublisherSink wraps a publish function as a Sink.
func NewPublisherSink(publish func(ctx context.Context, event domain.Event) error) *PublisherSink {
	return &PublisherSink{publish: publish}
}

// HandleEvent forwards the event to the underlying publisher
func (s *PublisherSink) HandleEvent(ctx context.Context, event domain.Event) error {
	return s.publish(ctx, event)
}
