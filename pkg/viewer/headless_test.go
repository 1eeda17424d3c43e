package viewer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leterax/moonview/pkg/camera"
	"github.com/leterax/moonview/pkg/scene"
)

func TestHeadlessCountsFrames(t *testing.T) {
	h := NewHeadless(nil)
	for i := 0; i < 3; i++ {
		h.Render(scene.NewGraph(), camera.State{})
	}
	assert.Equal(t, uint64(3), h.Frames())
}

func TestRunHeadlessTicksUntilCancelled(t *testing.T) {
	frames := NewFrameQueue()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		frames.RequestFrame(tick)
	}
	frames.RequestFrame(tick)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	RunHeadless(ctx, frames, time.Millisecond)

	assert.Greater(t, ticks, 0)
	assert.Equal(t, 1, frames.Pending())
}
