// Package debounce откладывает действие до паузы после последнего вызова.
package debounce

import (
	"sync"
	"time"
)

// Debouncer хранит не более одной отложенной задачи.
// Новый Schedule отменяет предыдущую задачу и заводит таймер заново.
type Debouncer struct {
	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

func New() *Debouncer {
	return &Debouncer{}
}

// Schedule отменяет ожидающую задачу и планирует fn через delay.
func (d *Debouncer) Schedule(fn func(), delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.generation++
	gen := d.generation

	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// таймер мог сработать уже после отмены
		if gen != d.generation || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// CancelPending отменяет ожидающую задачу. Возвращает true, если она была.
func (d *Debouncer) CancelPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending сообщает, есть ли запланированная и еще не запущенная задача.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.generation++
	return true
}
