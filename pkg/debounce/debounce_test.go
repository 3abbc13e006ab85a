package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleCollapsesBurst(t *testing.T) {
	d := New()
	var calls atomic.Int32
	var last atomic.Value

	for _, v := range []string{"A", "AB", "ABC"} {
		value := v
		d.Schedule(func() {
			calls.Add(1)
			last.Store(value)
		}, 30*time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, "ABC", last.Load())
	assert.False(t, d.Pending())
}

func TestScheduleRestartsQuietPeriod(t *testing.T) {
	d := New()
	fired := make(chan time.Time, 2)
	start := time.Now()

	d.Schedule(func() { fired <- time.Now() }, 50*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	d.Schedule(func() { fired <- time.Now() }, 50*time.Millisecond)

	select {
	case at := <-fired:
		// второй вызов перезапустил отсчет: прошло не меньше 30+50 мс
		assert.GreaterOrEqual(t, at.Sub(start), 80*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("debounced task never ran")
	}
	assert.Empty(t, fired)
}

func TestCancelPending(t *testing.T) {
	d := New()
	var calls atomic.Int32

	assert.False(t, d.CancelPending())

	d.Schedule(func() { calls.Add(1) }, 20*time.Millisecond)
	assert.True(t, d.Pending())
	assert.True(t, d.CancelPending())
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 0, calls.Load())
}
