package emulator

import (
	"io"

	"github.com/tuboc/chip8vm/chip8"
)

// HeadlessFrontend has no window and no input device. Events are queued by
// the caller, the last rendered frame can be written as text.
type HeadlessFrontend struct {
	out     io.Writer
	pending [][]Event
	pixels  []uint8

	Frames     uint64 // number of rendered frames
	ToneFrames uint64 // number of frames the tone was on
}

// NewHeadlessFrontend returns a frontend that writes the final frame to out on
// Close. out may be nil.
func NewHeadlessFrontend(out io.Writer) *HeadlessFrontend {
	return &HeadlessFrontend{out: out}
}

// Queue adds events that are returned together by one call of PollEvents.
func (h *HeadlessFrontend) Queue(events ...Event) {
	h.pending = append(h.pending, events)
}

func (h *HeadlessFrontend) PollEvents() []Event {
	if len(h.pending) == 0 {
		return nil
	}
	events := h.pending[0]
	h.pending = h.pending[1:]
	return events
}

func (h *HeadlessFrontend) Render(vm *chip8.Chip8) {
	h.pixels = vm.Display().Pixels()
	h.Frames++
}

func (h *HeadlessFrontend) SetTone(on bool) {
	if on {
		h.ToneFrames++
	}
}

// Screen returns the last rendered frame as half block text.
func (h *HeadlessFrontend) Screen() string {
	if h.pixels == nil {
		return ""
	}
	return renderHalfBlocks(h.pixels, "\n")
}

func (h *HeadlessFrontend) Close() error {
	if h.out == nil || h.pixels == nil {
		return nil
	}
	_, err := io.WriteString(h.out, h.Screen())
	return err
}
