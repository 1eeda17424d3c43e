package render

import (
	"context"

	"github.com/leterax/moonview/internal/openglhelper"
	"github.com/leterax/moonview/pkg/viewer"
)

// RunWindow flushes the frame queue once per buffer swap until the window
// closes or ctx is done. With vsync on, that is once per display refresh.
func RunWindow(ctx context.Context, window *openglhelper.Window, frames *viewer.FrameQueue) {
	for !window.ShouldClose() && ctx.Err() == nil {
		frames.Flush()

		window.SwapBuffers()
		window.PollEvents()
	}
}
