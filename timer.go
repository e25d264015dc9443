package debounce

import (
	"time"
)

// startTimer schedules the trailing edge check after wait. Any previously
// armed timer must already be stopped. It should only be called while the
// mutex is already locked.
func (d *Debouncer[A, R]) startTimer(wait time.Duration) {
	d.timerGen++
	gen := d.timerGen

	d.timer = d.clock.AfterFunc(wait, func() {
		d.onTimer(gen)
	})
	d.metrics.setPending(d.name, true)
}

// stopTimer stops and clears the armed timer, if any. It should only be
// called while the mutex is already locked.
func (d *Debouncer[A, R]) stopTimer() {
	if d.timer == nil {
		return
	}

	d.timer.Stop()
	d.timer = nil
	d.metrics.setPending(d.name, false)
}

// onTimer is called when the timer armed as generation gen expires.
//
// A timer can fire right as it is being stopped or replaced, in which case
// its callback is already waiting for the mutex. Such callbacks are ignored
// by comparing gen with the current generation.
func (d *Debouncer[A, R]) onTimer(gen uint64) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer == nil || gen != d.timerGen {
		return
	}

	now := d.clock.Now()

	if !d.shouldInvoke(now) {
		// A call arrived after the timer was armed, so the quiet period
		// restarted.
		remaining := d.remainingWait(now)
		d.timer = nil
		d.startTimer(remaining)
		d.log.Debugf("debounce %s: timer re-armed for %s", d.name, remaining)

		return
	}

	if _, err := d.trailingEdge(now, edgeTrailing); err != nil {
		d.log.Errorf("debounce %s: trailing invocation failed: %v", d.name, err)
	}
}
