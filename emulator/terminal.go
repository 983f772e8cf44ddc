package emulator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tuboc/chip8vm/chip8"
	"golang.org/x/term"
)

// KeyHoldTime is how long a key counts as held after the terminal reported it.
// Terminals only report key presses, so releases are synthesized.
const KeyHoldTime = 100 * time.Millisecond

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	bell           = "\a"
)

var terminalKeys = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

var terminalControls = map[byte]EventKind{
	0x03: EventQuit, // ctrl+c
	0x1b: EventQuit, // escape
	' ':  EventStep,
	'\r': EventResume,
	'\n': EventResume,
	'\t': EventReset,
}

// TerminalFrontend renders the display with half block characters, two
// pixel rows per text line, and reads the keys from a raw mode terminal.
type TerminalFrontend struct {
	in  io.Reader
	out *bufio.Writer
	now func() time.Time

	fd    int
	state *term.State

	events chan Event
	held   map[uint8]time.Time
	last   []uint8
	tone   bool
}

// NewTerminalFrontend creates a frontend reading from in and writing to out.
// If in is a terminal it is switched to raw mode until Close is called.
func NewTerminalFrontend(in io.Reader, out io.Writer) (*TerminalFrontend, error) {
	t := &TerminalFrontend{
		in:     in,
		out:    bufio.NewWriter(out),
		now:    time.Now,
		fd:     -1,
		events: make(chan Event, 64),
		held:   map[uint8]time.Time{},
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		if w, h, err := term.GetSize(fd); err == nil && (w < chip8.DisplayW || h < chip8.DisplayH/2) {
			return nil, fmt.Errorf("terminal size %dx%d is too small, %dx%d is needed", w, h, chip8.DisplayW, chip8.DisplayH/2)
		}

		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("setting raw mode: %w", err)
		}
		t.fd = fd
		t.state = state
	}

	_, _ = t.out.WriteString(ansiClear + ansiHideCursor)
	return t, t.out.Flush()
}

// Pump translates the terminal input into events until ctx is cancelled or the input ends.
func (t *TerminalFrontend) Pump(ctx context.Context) error {
	chunks := make(chan []byte)
	readErr := make(chan error, 1)

	// the read can not be interrupted, the goroutine ends with the process
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := t.in.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				err = nil
			}
			t.send(ctx, Event{Kind: EventQuit})
			return err

		case chunk := <-chunks:
			for _, ev := range translateInput(chunk) {
				t.send(ctx, ev)
			}
		}
	}
}

func (t *TerminalFrontend) send(ctx context.Context, ev Event) {
	select {
	case t.events <- ev:
	case <-ctx.Done():
	}
}

// translateInput maps raw terminal bytes to events. Escape sequences such as
// the ones sent by arrow keys are dropped.
func translateInput(b []byte) []Event {
	var events []Event
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == 0x1b && i+1 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
			i += 2
			for i < len(b) && (b[i] < 0x40 || b[i] > 0x7e) {
				i++
			}
			continue
		}

		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if key, ok := terminalKeys[c]; ok {
			events = append(events, Event{Kind: EventKeyDown, Key: key})
			continue
		}
		if kind, ok := terminalControls[c]; ok {
			events = append(events, Event{Kind: kind})
		}
	}
	return events
}

// PollEvents returns the pending input events. A key that has not been
// reported again within KeyHoldTime is released.
func (t *TerminalFrontend) PollEvents() []Event {
	now := t.now()
	var events []Event

	for done := false; !done; {
		select {
		case ev := <-t.events:
			if ev.Kind == EventKeyDown {
				_, down := t.held[ev.Key]
				t.held[ev.Key] = now
				if down {
					continue
				}
			}
			events = append(events, ev)
		default:
			done = true
		}
	}

	for key := range uint8(chip8.KeyCount) {
		at, ok := t.held[key]
		if ok && now.Sub(at) >= KeyHoldTime {
			delete(t.held, key)
			events = append(events, Event{Kind: EventKeyUp, Key: key})
		}
	}
	return events
}

// Render redraws the display if it changed since the last frame.
func (t *TerminalFrontend) Render(vm *chip8.Chip8) {
	pixels := vm.Display().Pixels()
	if t.last != nil && string(pixels) == string(t.last) {
		return
	}
	t.last = pixels

	_, _ = t.out.WriteString(ansiHome)
	_, _ = t.out.WriteString(renderHalfBlocks(pixels, "\r\n"))
	_ = t.out.Flush()
}

func renderHalfBlocks(pixels []uint8, newline string) string {
	var sb strings.Builder
	for y := 0; y < chip8.DisplayH; y += 2 {
		for x := range chip8.DisplayW {
			top := pixels[y*chip8.DisplayW+x] != 0
			bottom := pixels[(y+1)*chip8.DisplayW+x] != 0
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(newline)
	}
	return sb.String()
}

// SetTone rings the terminal bell when the tone starts.
func (t *TerminalFrontend) SetTone(on bool) {
	if on && !t.tone {
		_, _ = t.out.WriteString(bell)
		_ = t.out.Flush()
	}
	t.tone = on
}

func (t *TerminalFrontend) Close() error {
	_, _ = t.out.WriteString(ansiShowCursor + "\r\n")
	err := t.out.Flush()
	if t.state != nil {
		if rerr := term.Restore(t.fd, t.state); rerr != nil {
			err = fmt.Errorf("restoring terminal: %w", rerr)
		}
		t.state = nil
	}
	return err
}
