package overlay

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Implementations must invoke f on the
// goroutine that drives the overlay, typically by posting an event to the
// window's queue.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

func (s SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer { return s(d, f) }

// PostingScheduler returns a Scheduler backed by time.AfterFunc that hands
// the callback to post instead of running it on the timer goroutine.
func PostingScheduler(post func(func())) Scheduler {
	return SchedulerFunc(func(d time.Duration, f func()) Timer {
		return time.AfterFunc(d, func() { post(f) })
	})
}

func (o *Overlay) startLongPress() {
	o.stopLongPress()
	if o.sched == nil {
		return
	}
	o.pressGen++
	gen := o.pressGen
	o.timer = o.sched.AfterFunc(o.cfg.LongPress, func() {
		if gen == o.pressGen {
			o.FireLongPress()
		}
	})
}

func (o *Overlay) stopLongPress() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.pressGen++
}
