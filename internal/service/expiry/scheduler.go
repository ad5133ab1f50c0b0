// Package expiry runs one cancellable deferred task per booking id.
package expiry

import (
	"sort"
	"sync"
	"time"
)

// Task функция, выполняемая по истечении таймера
type Task = func(id int64)

// Metrics хук для отслеживания количества взведённых таймеров
type Metrics interface {
	SetPaymentTimers(n int)
}

type entry struct {
	timer *time.Timer
	seq   uint64
}

// Scheduler набор отложенных задач по ID бронирования
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[int64]entry
	seq     uint64
	stopped bool
	metrics Metrics
}

// NewScheduler создает планировщик. metrics может быть nil
func NewScheduler(metrics Metrics) *Scheduler {
	return &Scheduler{
		tasks:   make(map[int64]entry),
		metrics: metrics,
	}
}

// Arm взводит задачу для id через delay, заменяя предыдущую задачу этого id.
// Неположительный delay запускает задачу сразу в отдельной горутине.
func (s *Scheduler) Arm(id int64, delay time.Duration, fn Task) {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if prev, ok := s.tasks[id]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	timer := time.AfterFunc(delay, func() {
		if !s.claim(id, seq) {
			return
		}
		fn(id)
	})
	s.tasks[id] = entry{timer: timer, seq: seq}
	s.report()
}

// claim снимает задачу из набора, если она всё ещё актуальна
func (s *Scheduler) claim(id int64, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok || current.seq != seq {
		return false
	}
	delete(s.tasks, id)
	s.report()
	return true
}

// Cancel отменяет задачу id. Безопасно для неизвестного или уже сработавшего id
func (s *Scheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.tasks[id]; ok {
		e.timer.Stop()
		delete(s.tasks, id)
		s.report()
	}
}

// Len количество взведённых задач
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Pending ID взведённых задач по возрастанию
func (s *Scheduler) Pending() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Stop отменяет все задачи. После Stop новые задачи не взводятся
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.tasks {
		e.timer.Stop()
		delete(s.tasks, id)
	}
	s.stopped = true
	s.report()
}

func (s *Scheduler) report() {
	if s.metrics != nil {
		s.metrics.SetPaymentTimers(len(s.tasks))
	}
}
