// timer/countdown.go
package timer

import (
	"sync"
	"time"
)

// Countdown is a cancellable once-per-tick countdown. It invokes onTick with
// the remaining count after every tick and onExpire exactly once when the
// count reaches zero. Stop cancels it; a stopped countdown never fires again.
//
// Callbacks run on the countdown's own goroutine and must take whatever lock
// they need themselves. Callers that start a new round must Stop the old
// countdown first and additionally guard callbacks with a round sequence
// check, because an expiry that was already in flight when Stop was called
// can still be delivered.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	stopChan  chan struct{}
}

// Start creates a countdown of `seconds` ticks, one tick every `tick`
// duration. The gameplay tick is one second; tests shorten it.
func Start(seconds int, tick time.Duration, onTick func(remaining int), onExpire func()) *Countdown {
	c := &Countdown{
		remaining: seconds,
		stopChan:  make(chan struct{}),
	}
	go c.run(tick, onTick, onExpire)
	return c
}

func (c *Countdown) run(tick time.Duration, onTick func(remaining int), onExpire func()) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.stopped {
				c.mu.Unlock()
				return
			}
			c.remaining--
			remaining := c.remaining
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if remaining <= 0 {
				c.Stop()
				if onExpire != nil {
					onExpire()
				}
				return
			}

		case <-c.stopChan:
			return
		}
	}
}

// Stop cancels the countdown. Idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stopChan)
}

// Reset winds the remaining count back up without restarting the goroutine.
// Used when an accepted bid refreshes the active countdown to full.
func (c *Countdown) Reset(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.remaining = seconds
	}
}

// Remaining returns the ticks left, floored at zero.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}
