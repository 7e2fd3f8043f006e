package emitter_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/emitter"
	"github.com/namehaus/registrar/internal/logger"
	"github.com/namehaus/registrar/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testEvent() domain.Event {
	return domain.NewEvent(domain.EventTypeDomainRegistered, "haus", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
}

func TestEmitter_Emit_FansOutToAllSinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockSink(ctrl)
	second := mocks.NewMockSink(ctrl)

	event := testEvent()
	first.EXPECT().HandleEvent(gomock.Any(), event).Return(nil)
	second.EXPECT().HandleEvent(gomock.Any(), event).Return(nil)

	e := emitter.New(2, first, second)
	e.Emit(context.Background(), event)

	// Close drains in-flight dispatches before the controller verifies
	e.Close()
}

func TestEmitter_Emit_SinkErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockSink(ctrl)
	healthy := mocks.NewMockSink(ctrl)

	event := testEvent()
	failing.EXPECT().HandleEvent(gomock.Any(), event).Return(assert.AnError)
	healthy.EXPECT().HandleEvent(gomock.Any(), event).Return(nil)

	// one sink failing must not stop the other from seeing the event
	e := emitter.New(2, failing, healthy)
	e.Emit(context.Background(), event)
	e.Close()
}

func TestEmitter_Emit_SurvivesCanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)

	var seenCtx context.Context
	sink.EXPECT().
		HandleEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Event) error {
			seenCtx = ctx
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	e := emitter.New(1, sink)
	e.Emit(ctx, testEvent())
	// the request context ends right after commit; the dispatch must not
	// be dropped with it
	cancel()
	e.Close()

	assert.NoError(t, seenCtx.Err())
}

func TestEmitter_Emit_Ordering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)

	var mu sync.Mutex
	var seen []string
	sink.EXPECT().
		HandleEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.Event) error {
			mu.Lock()
			seen = append(seen, event.ID)
			mu.Unlock()
			return nil
		}).
		Times(3)

	// a single worker preserves submission order
	e := emitter.New(1, sink)
	events := []domain.Event{testEvent(), testEvent(), testEvent()}
	for _, event := range events {
		e.Emit(context.Background(), event)
	}
	e.Close()

	assert.Equal(t, []string{events[0].ID, events[1].ID, events[2].ID}, seen)
}

func TestEmitter_NewNoop(t *testing.T) {
	e := emitter.NewNoop()
	e.Emit(context.Background(), testEvent())
	e.Close()
}

func TestPublisherSink(t *testing.T) {
	event := testEvent()

	var got domain.Event
	sink := emitter.NewPublisherSink(func(_ context.Context, event domain.Event) error {
		got = event
		return nil
	})

	assert.NoError(t, sink.HandleEvent(context.Background(), event))
	assert.Equal(t, event.ID, got.ID)
}
