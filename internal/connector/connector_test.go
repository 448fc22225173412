package connector

import (
	"sync"
	"testing"
	"time"
)

func TestConnectorProduceConsume(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)

	c.Produce(1)
	c.Produce(2)

	v, ok := c.Consume()
	if !ok || v != 1 {
		t.Fatalf("Consume() = %d, %v; want 1, true", v, ok)
	}
	v, ok = c.Consume()
	if !ok || v != 2 {
		t.Fatalf("Consume() = %d, %v; want 2, true", v, ok)
	}
}

func TestConnectorTerminatesWhenProducersFinishAndQueueEmpty(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(2)

	c.Produce(10)
	c.ProducerFinished()
	if c.IsInputTerminated() {
		t.Fatalf("terminated too early: one producer still active")
	}

	if v, ok := c.Consume(); !ok || v != 10 {
		t.Fatalf("Consume() = %d, %v; want 10, true", v, ok)
	}

	c.ProducerFinished()
	if !c.IsInputTerminated() {
		t.Fatalf("connector should be terminated once producers hit zero and queue is empty")
	}
	if _, ok := c.Consume(); ok {
		t.Fatalf("Consume() on terminated empty connector should return ok=false")
	}
}

func TestConnectorWakesAllWaitersOnTermination(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)

	const waiters = 5
	var wg sync.WaitGroup
	results := make([]bool, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok := c.Consume()
			results[i] = ok
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	c.ProducerFinished()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for all consumers to wake on termination")
	}

	for i, ok := range results {
		if ok {
			t.Fatalf("waiter %d: Consume() returned ok=true on a terminated, empty connector", i)
		}
	}
}

func TestConnectorCloseQueueForcesTermination(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(3)
	c.Produce(1)

	c.CloseQueue()

	if !c.IsInputTerminated() {
		t.Fatalf("CloseQueue should force termination regardless of producer count or queue contents")
	}
}

func TestConnectorProduceWakesAtMostOneWaiter(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)

	woken := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			v, ok := c.Consume()
			if ok {
				woken <- v
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	c.Produce(42)

	select {
	case v := <-woken:
		if v != 42 {
			t.Fatalf("got %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("no waiter woke up after Produce")
	}

	select {
	case v := <-woken:
		t.Fatalf("a second waiter woke up unexpectedly with %d", v)
	case <-time.After(50 * time.Millisecond):
	}

	c.ProducerFinished()
}

func TestConnectorPollTimesOutWithNoData(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)

	start := time.Now()
	v, ok, timedOut := c.Poll(10 * time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Fatalf("Poll() ok = true, want false on timeout")
	}
	if !timedOut {
		t.Fatalf("Poll() timedOut = false, want true")
	}
	if v != 0 {
		t.Fatalf("Poll() value = %d, want zero value on timeout", v)
	}
	if elapsed < 10*time.Millisecond {
		t.Fatalf("Poll() returned after %v, want at least the requested timeout", elapsed)
	}

	c.ProducerFinished()
}

func TestConnectorPollReturnsDataBeforeTimeout(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)
	c.Produce(7)

	v, ok, timedOut := c.Poll(time.Second)
	if !ok || timedOut || v != 7 {
		t.Fatalf("Poll() = %d, %v, %v; want 7, true, false", v, ok, timedOut)
	}

	c.ProducerFinished()
}

func TestConnectorPollReturnsOnTermination(t *testing.T) {
	c := New[int]("nums")
	c.AddProducers(1)
	c.ProducerFinished()

	v, ok, timedOut := c.Poll(time.Second)
	if ok || timedOut || v != 0 {
		t.Fatalf("Poll() on terminated connector = %d, %v, %v; want 0, false, false", v, ok, timedOut)
	}
}
