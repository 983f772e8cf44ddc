package emulator

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/retroenv/retrogolib/log"
	"github.com/tuboc/chip8vm/chip8"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	DisplayScale = 10
	EmulatorW    = chip8.DisplayW * DisplayScale
	EmulatorH    = chip8.DisplayH * DisplayScale
	WindowW      = EmulatorW
	InformationH = 256
	FontSize     = 16
	FontPerW     = 32
	AudioSamples = 64
)

// SDLFrontend shows the machine in an SDL window. With a font image it also
// draws the instruction history, the registers and the keys below the display.
//
// SDL must be used from the main thread, callers should lock it with runtime.LockOSThread.
type SDLFrontend struct {
	logger   *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	font     *sdl.Texture
	tone     []byte
}

var scanCode2Key = map[sdl.Scancode]uint8{
	sdl.SCANCODE_4: 0x1,
	sdl.SCANCODE_5: 0x2,
	sdl.SCANCODE_6: 0x3,
	sdl.SCANCODE_7: 0xc,
	sdl.SCANCODE_R: 0x4,
	sdl.SCANCODE_T: 0x5,
	sdl.SCANCODE_Y: 0x6,
	sdl.SCANCODE_U: 0xd,
	sdl.SCANCODE_F: 0x7,
	sdl.SCANCODE_G: 0x8,
	sdl.SCANCODE_H: 0x9,
	sdl.SCANCODE_J: 0xe,
	sdl.SCANCODE_V: 0xa,
	sdl.SCANCODE_B: 0x0,
	sdl.SCANCODE_N: 0xb,
	sdl.SCANCODE_M: 0xf,
}

var scanCode2Event = map[sdl.Scancode]EventKind{
	sdl.SCANCODE_SPACE:  EventStep,
	sdl.SCANCODE_RETURN: EventResume,
	sdl.SCANCODE_Z:      EventReset,
}

// NewSDLFrontend opens the window and the audio device. fontPath names the
// image used for the debug overlay, the overlay is left out if it is empty.
func NewSDLFrontend(logger *log.Logger, title, fontPath string) (*SDLFrontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	f := &SDLFrontend{logger: logger, tone: sineWave()}

	h := int32(EmulatorH)
	if fontPath != "" {
		h += InformationH
	}
	if err := f.initRenderer(title, h); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.initAudio(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if fontPath != "" {
		if err := f.initFont(fontPath); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (f *SDLFrontend) initRenderer(title string, h int32) error {
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, WindowW, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	f.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	f.renderer = renderer
	return nil
}

func (f *SDLFrontend) initAudio() error {
	want := &sdl.AudioSpec{
		Freq:     AudioSamples * VBlankFrequency,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  AudioSamples,
	}
	have := &sdl.AudioSpec{}
	audio, err := sdl.OpenAudioDevice("", false, want, have, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	f.audio = audio

	sdl.PauseAudioDevice(audio, false)
	return nil
}

func (f *SDLFrontend) initFont(path string) error {
	surface, err := img.Load(path)
	if err != nil {
		return fmt.Errorf("loading font '%s': %w", path, err)
	}
	defer surface.Free()

	texture, err := f.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return fmt.Errorf("creating font texture: %w", err)
	}
	f.font = texture

	if err := texture.SetBlendMode(sdl.BLENDMODE_ADD); err != nil {
		return fmt.Errorf("setting font blend mode: %w", err)
	}
	return nil
}

// sineWave returns one frame of a full period sine wave as 32 bit float samples.
func sineWave() []byte {
	samples := make([]byte, 4*AudioSamples)
	for i := range AudioSamples {
		f := math.Sin(2.0 * math.Pi * float64(i) / AudioSamples)
		binary.LittleEndian.PutUint32(samples[4*i:], math.Float32bits(float32(f)))
	}
	return samples
}

func (f *SDLFrontend) PollEvents() []Event {
	var events []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, Event{Kind: EventQuit})

		case *sdl.KeyboardEvent:
			key, isKey := scanCode2Key[ev.Keysym.Scancode]
			switch {
			case isKey && ev.State == sdl.PRESSED:
				events = append(events, Event{Kind: EventKeyDown, Key: key})
			case isKey:
				events = append(events, Event{Kind: EventKeyUp, Key: key})
			case ev.State == sdl.PRESSED && ev.Repeat == 0:
				if kind, ok := scanCode2Event[ev.Keysym.Scancode]; ok {
					events = append(events, Event{Kind: kind})
				}
			}

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				events = append(events, Event{Kind: EventFocusLost})
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				events = append(events, Event{Kind: EventFocusGained})
			}
		}
	}
	return events
}

func (f *SDLFrontend) Render(vm *chip8.Chip8) {
	_ = f.renderer.SetDrawColor(0, 0, 0, 255)
	_ = f.renderer.Clear()

	// chip8 display
	_ = f.renderer.SetDrawColor(0, 255, 0, 255)
	disp := vm.Display()
	for y := range int32(chip8.DisplayH) {
		for x := range int32(chip8.DisplayW) {
			if disp.Pixel(int(x), int(y)) {
				_ = f.renderer.FillRect(&sdl.Rect{X: x * DisplayScale, Y: y * DisplayScale, W: DisplayScale, H: DisplayScale})
			}
		}
	}

	if f.font != nil {
		f.drawDebugInfo(vm)
	}

	f.renderer.Present()
}

// SetTone queues one frame of the tone while on is set.
func (f *SDLFrontend) SetTone(on bool) {
	if !on {
		return
	}
	if err := sdl.QueueAudio(f.audio, f.tone); err != nil {
		f.logger.Error("Queueing audio failed", log.Err(err))
	}
}

func (f *SDLFrontend) drawDebugInfo(vm *chip8.Chip8) {
	_ = f.renderer.SetDrawColor(32, 32, 32, 255)
	_ = f.renderer.FillRect(&sdl.Rect{X: 0, Y: EmulatorH, W: EmulatorW, H: InformationH})

	// draw opcodes history
	for i, tr := range vm.History() {
		f.drawText(tr.String(), 0, EmulatorH+i*FontSize)
	}

	st := vm.State()

	// draw v registers
	offsetX := EmulatorW/2 + 48
	for i, v := range st.V {
		f.drawText(fmt.Sprintf("V%X = %02X", i, v), offsetX, EmulatorH+i*FontSize)
	}

	// draw other registers
	offsetX = EmulatorW - FontSize*9
	f.drawText(fmt.Sprintf("DT = %02X", st.DT), offsetX, EmulatorH+FontSize*0)
	f.drawText(fmt.Sprintf("ST = %02X", st.ST), offsetX, EmulatorH+FontSize*1)
	f.drawText(fmt.Sprintf("SP = %02X", st.SP), offsetX, EmulatorH+FontSize*2)
	f.drawText(fmt.Sprintf(" I = %04X", st.I), offsetX, EmulatorH+FontSize*3)

	// draw key inputs
	keys := vm.Keypad().State()
	for row, line := range keypadLayout {
		prefix := "     "
		if row == 0 {
			prefix = "KEYS "
		}
		s := prefix
		for _, k := range line {
			if keys[k] {
				s += "1"
			} else {
				s += "0"
			}
		}
		f.drawText(s, offsetX, EmulatorH+FontSize*(5+row))
	}
}

// keypadLayout is the arrangement of the hex keypad of the COSMAC VIP.
var keypadLayout = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xc},
	{0x4, 0x5, 0x6, 0xd},
	{0x7, 0x8, 0x9, 0xe},
	{0xa, 0x0, 0xb, 0xf},
}

func (f *SDLFrontend) drawText(s string, x, y int) {
	for i, v := range []byte(s) {
		v -= byte(' ')
		fx := FontSize * (int32(v) % FontPerW)
		fy := FontSize * (int32(v) / FontPerW)
		_ = f.renderer.Copy(f.font,
			&sdl.Rect{X: fx, Y: fy, W: FontSize, H: FontSize},
			&sdl.Rect{X: int32(x + i*FontSize), Y: int32(y), W: FontSize, H: FontSize})
	}
}

func (f *SDLFrontend) Close() error {
	if f.font != nil {
		_ = f.font.Destroy()
	}
	if f.audio != 0 {
		sdl.CloseAudioDevice(f.audio)
	}
	if f.renderer != nil {
		_ = f.renderer.Destroy()
	}
	var err error
	if f.window != nil {
		err = f.window.Destroy()
	}
	sdl.Quit()
	return err
}
