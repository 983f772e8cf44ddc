package emulator

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sqweek/dialog"
	"github.com/tuboc/chip8vm/chip8"
)

// ErrNoROMSelected is returned by SelectROMFile if the user closed the dialog.
var ErrNoROMSelected = errors.New("no rom selected")

// LoadROMFile reads a program image from disk.
func LoadROMFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file '%s': %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	// read one byte more than fits so oversized files are detected without reading them whole
	b, err := io.ReadAll(io.LimitReader(file, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", path, err)
	}
	if len(b) > chip8.MaxROMSize {
		return nil, fmt.Errorf("file '%s': %w", path, chip8.ErrROMTooLarge)
	}
	return b, nil
}

// SelectROMFile asks the user for a program file with a native file dialog.
func SelectROMFile() (string, error) {
	path, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("All files", "*").
		Title("Open CHIP-8 ROM").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrNoROMSelected
	}
	if err != nil {
		return "", fmt.Errorf("showing file dialog: %w", err)
	}
	return path, nil
}
