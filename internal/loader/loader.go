// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// File supplies the program stored in a file on disk.
type File struct {
	path string
}

// New creates a new program loader for the given file.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the path of the program file.
func (f *File) Path() string {
	return f.path
}

// LoadProgram reads the program file. A missing file results in an error
// wrapping chip8.ErrProgramNotFound, a file larger than the available memory
// in one wrapping chip8.ErrProgramTooLarge and any other failure in one
// wrapping chip8.ErrProgramUnreadable.
// Reading stops one byte after the largest program that fits into memory.
func (f *File) LoadProgram() ([]byte, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: opening file %s: %w", chip8.ErrProgramNotFound, f.path, err)
		}
		return nil, fmt.Errorf("%w: opening file %s: %w", chip8.ErrProgramUnreadable, f.path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading file %s: %w", chip8.ErrProgramUnreadable, f.path, err)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, f.tooLarge(file, len(data))
	}
	return data, nil
}

// tooLarge returns the error for a program file that does not fit into
// memory, reporting the size of the file on disk.
func (f *File) tooLarge(file *os.File, read int) error {
	size := int64(read)
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}
	return fmt.Errorf("%w: file %s has %d bytes, %d bytes available",
		chip8.ErrProgramTooLarge, f.path, size, chip8.MaxProgramSize)
}

// Bytes supplies a program that is already in memory.
type Bytes []byte

// LoadProgram returns the program bytes.
func (b Bytes) LoadProgram() ([]byte, error) {
	return b, nil
}
