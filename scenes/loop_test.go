package scenes

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameLoopRunsUntilStepDeclines(t *testing.T) {
	steps := 0
	loop := NewGameLoop(50, func() bool {
		steps++
		return steps < 5
	})
	loop.Run(false)
	assert.Equal(t, 5, steps)
}

func TestGameLoopStop(t *testing.T) {
	var steps atomic.Int32
	loop := NewGameLoop(1000, func() bool {
		steps.Add(1)
		return true
	})

	go loop.Run(true)
	require.Eventually(t, func() bool { return steps.Load() > 2 }, time.Second, time.Millisecond)

	loop.Stop()
	after := steps.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, steps.Load())
}
