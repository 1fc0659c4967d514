package prefs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond, "a burst of triggers fires exactly once")

	// A later trigger fires again.
	d.Trigger()
	assert.Eventually(t, func() bool {
		return fired.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_FlushRunsPendingImmediately(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(time.Hour, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), fired.Load())

	// Nothing pending: flush is a no-op.
	d.Flush()
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
