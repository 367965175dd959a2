package eventbus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dep2p/go-connectivity/pkg/types"
)

type testEvent struct {
	Value int
}

func recv(t *testing.T, ch <-chan any) any {
	t.Helper()
	select {
	case evt, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return evt
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	return nil
}

// ============================================================================
//                              基础功能
// ============================================================================

func TestBus_EmitAndReceive(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe(new(testEvent))
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	defer sub.Close()

	em, err := bus.Emitter(new(testEvent))
	if err != nil {
		t.Fatalf("Emitter() failed: %v", err)
	}
	defer em.Close()

	if err := em.Emit(testEvent{Value: 42}); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}

	if got := recv(t, sub.Out()).(testEvent); got.Value != 42 {
		t.Errorf("Value = %d, want 42", got.Value)
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	subs := make([]interface{ Out() <-chan any }, 3)
	for i := range subs {
		s, err := bus.Subscribe(new(testEvent))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		subs[i] = s
	}

	em, _ := bus.Emitter(new(testEvent))
	defer em.Close()
	_ = em.Emit(testEvent{Value: 7})

	for i, s := range subs {
		if got := recv(t, s.Out()).(testEvent); got.Value != 7 {
			t.Errorf("sub %d Value = %d, want 7", i, got.Value)
		}
	}
}

func TestBus_InvalidTypes(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe(nil); !errors.Is(err, ErrInvalidEventType) {
		t.Errorf("Subscribe(nil) err = %v", err)
	}
	if _, err := bus.Subscribe(testEvent{}); !errors.Is(err, ErrNonPointerType) {
		t.Errorf("Subscribe(value) err = %v", err)
	}
	if _, err := bus.Emitter(testEvent{}); !errors.Is(err, ErrNonPointerType) {
		t.Errorf("Emitter(value) err = %v", err)
	}
}

func TestEmitter_WrongType(t *testing.T) {
	bus := NewBus()
	em, _ := bus.Emitter(new(testEvent))
	defer em.Close()

	if err := em.Emit(&testEvent{}); !errors.Is(err, ErrWrongEventType) {
		t.Errorf("Emit(pointer) err = %v, want ErrWrongEventType", err)
	}
	if err := em.Emit(nil); !errors.Is(err, ErrWrongEventType) {
		t.Errorf("Emit(nil) err = %v, want ErrWrongEventType", err)
	}
}

func TestEmitter_Closed(t *testing.T) {
	bus := NewBus()
	em, _ := bus.Emitter(new(testEvent))

	_ = em.Close()
	_ = em.Close()

	if err := em.Emit(testEvent{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Emit after Close err = %v, want ErrClosed", err)
	}
	if n := bus.nodeCount(); n != 0 {
		t.Errorf("nodeCount = %d, want 0 after last emitter closed", n)
	}
}

// ============================================================================
//                              有状态模式
// ============================================================================

func TestBus_StatefulDeliversLast(t *testing.T) {
	bus := NewBus()

	em, _ := bus.Emitter(new(types.EvtStatusChanged), Stateful())
	defer em.Close()

	_ = em.Emit(types.EvtStatusChanged{Previous: types.StatusDetermining, Current: types.StatusConnected})
	_ = em.Emit(types.EvtStatusChanged{Previous: types.StatusConnected, Current: types.StatusNotConnected})

	sub, _ := bus.Subscribe(new(types.EvtStatusChanged))
	defer sub.Close()

	got := recv(t, sub.Out()).(types.EvtStatusChanged)
	if got.Current != types.StatusNotConnected {
		t.Errorf("late subscriber got %v, want last event", got.Current)
	}
}

// ============================================================================
//                              慢消费者与关闭
// ============================================================================

func TestBus_SlowSubscriberDrops(t *testing.T) {
	bus := NewBus()

	sub, _ := bus.Subscribe(new(testEvent), BufSize(1), Name("slow"))
	defer sub.Close()
	em, _ := bus.Emitter(new(testEvent))
	defer em.Close()

	for i := 0; i < 5; i++ {
		if err := em.Emit(testEvent{Value: i}); err != nil {
			t.Fatalf("Emit should never block or fail: %v", err)
		}
	}

	if n := sub.Dropped(); n != 4 {
		t.Errorf("Dropped = %d, want 4", n)
	}
	if got := recv(t, sub.Out()).(testEvent); got.Value != 0 {
		t.Errorf("first buffered event = %d, want 0", got.Value)
	}
	select {
	case evt := <-sub.Out():
		t.Errorf("unexpected extra event %v", evt)
	default:
	}
}

func TestSubscription_CloseClosesChannel(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(new(testEvent))

	_ = sub.Close()
	_ = sub.Close()

	if _, ok := <-sub.Out(); ok {
		t.Error("Out() should be closed")
	}
	if n := bus.nodeCount(); n != 0 {
		t.Errorf("nodeCount = %d, want 0", n)
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(new(testEvent))

	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-sub.Out(); ok {
		t.Error("subscriptions should be closed with the bus")
	}
	if _, err := bus.Subscribe(new(testEvent)); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe after Close err = %v, want ErrClosed", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close err = %v", err)
	}
}

func TestBus_ConcurrentEmitAndClose(t *testing.T) {
	bus := NewBus()
	em, _ := bus.Emitter(new(testEvent))
	defer em.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub, err := bus.Subscribe(new(testEvent), BufSize(4))
			if err != nil {
				return
			}
			time.Sleep(time.Millisecond)
			_ = sub.Close()
		}()
		go func(v int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = em.Emit(testEvent{Value: v})
			}
		}(i)
	}
	wg.Wait()
}
