package viewer

import (
	"context"
	"log/slog"
	"time"

	"github.com/leterax/moonview/pkg/camera"
	"github.com/leterax/moonview/pkg/scene"
)

// HeadlessFrameInterval paces ticks when no window is attached
const HeadlessFrameInterval = time.Second / 60

// RunHeadless flushes the frame queue on a ticker until ctx is done
func RunHeadless(ctx context.Context, frames *FrameQueue, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frames.Flush()
		}
	}
}

// Headless is a rasterizer with no output surface. Frames are computed and counted, never shown.
type Headless struct {
	frames uint64
	log    *slog.Logger
}

// NewHeadless creates a headless rasterizer
func NewHeadless(log *slog.Logger) *Headless {
	if log == nil {
		log = slog.Default()
	}
	return &Headless{log: log}
}

// Render implements Rasterizer
func (h *Headless) Render(g *scene.Graph, cam camera.State) {
	h.frames++
	if h.frames%600 == 0 {
		h.log.Debug("Headless frame", "frame", h.frames, "models", len(g.Models()), "camera", cam.Position)
	}
}

// Frames returns the number of frames rendered
func (h *Headless) Frames() uint64 {
	return h.frames
}
