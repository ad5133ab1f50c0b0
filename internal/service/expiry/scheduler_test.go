package expiry

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timerGauge struct {
	mu   sync.Mutex
	last int
}

func (g *timerGauge) SetPaymentTimers(n int) {
	g.mu.Lock()
	g.last = n
	g.mu.Unlock()
}

func (g *timerGauge) value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

type recorder struct {
	mu    sync.Mutex
	fired []int64
}

func (r *recorder) task(id int64) {
	r.mu.Lock()
	r.fired = append(r.fired, id)
	r.mu.Unlock()
}

func (r *recorder) ids() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.fired...)
}

func TestScheduler_Fires(t *testing.T) {
	gauge := &timerGauge{}
	s := NewScheduler(gauge)
	rec := &recorder{}

	s.Arm(1, 10*time.Millisecond, rec.task)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, gauge.value())

	require.Eventually(t, func() bool { return len(rec.ids()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{1}, rec.ids())
	assert.Equal(t, 0, s.Len(), "сработавшая задача снимается")
	assert.Equal(t, 0, gauge.value())
}

func TestScheduler_CancelPreventsFire(t *testing.T) {
	s := NewScheduler(nil)
	rec := &recorder{}

	s.Arm(1, 20*time.Millisecond, rec.task)
	s.Cancel(1)
	s.Cancel(1)
	s.Cancel(404)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.ids())
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_ArmReplacesExisting(t *testing.T) {
	s := NewScheduler(nil)
	var first, second atomic.Int32

	s.Arm(7, 15*time.Millisecond, func(int64) { first.Add(1) })
	s.Arm(7, 30*time.Millisecond, func(int64) { second.Add(1) })
	assert.Equal(t, 1, s.Len())

	require.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestScheduler_StaleFireIsIgnored(t *testing.T) {
	s := NewScheduler(nil)
	var ran atomic.Int32

	s.Arm(3, time.Hour, func(int64) { ran.Add(1) })

	// имитируем таймер, который успел сработать до замены
	s.mu.Lock()
	staleSeq := s.tasks[3].seq
	s.mu.Unlock()

	s.Arm(3, time.Hour, func(int64) { ran.Add(1) })
	assert.False(t, s.claim(3, staleSeq))
	assert.Equal(t, 1, s.Len())

	s.Cancel(3)
	assert.False(t, s.claim(3, staleSeq+1))
	assert.Equal(t, int32(0), ran.Load())
}

func TestScheduler_NonPositiveDelayFiresImmediately(t *testing.T) {
	s := NewScheduler(nil)
	rec := &recorder{}

	s.Arm(5, -time.Second, rec.task)
	require.Eventually(t, func() bool { return len(rec.ids()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_PendingAndStop(t *testing.T) {
	gauge := &timerGauge{}
	s := NewScheduler(gauge)
	rec := &recorder{}

	s.Arm(30, time.Hour, rec.task)
	s.Arm(10, time.Hour, rec.task)
	s.Arm(20, time.Hour, rec.task)
	assert.Equal(t, []int64{10, 20, 30}, s.Pending())

	s.Stop()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, gauge.value())

	s.Arm(40, time.Millisecond, rec.task)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, rec.ids())
}
