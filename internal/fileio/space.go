// Package fileio persists configuration spaces and solution paths as plain
// text, and exports results as GeoJSON.
//
// Configuration space format:
//
//	<agent radius>
//	<width>
//	<height>
//	<height> rows of <width> space separated states (0 free, 1 obstacle, 2 padded)
//
// Path format: one "<x> <y>" line per cell from start to goal. An empty
// file is an empty path.
package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"grid-planner/internal/cspace"
	"grid-planner/internal/grid"
)

// ErrMalformed is returned for input that does not follow the file formats
var ErrMalformed = errors.New("fileio: malformed input")

const maxPrealloc = 1 << 20

// WriteSpace writes a configuration space in the text format
func WriteSpace(w io.Writer, space *cspace.Space) error {
	shape := space.Shape()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n%d\n", space.Radius(), shape.Width, shape.Height)
	bw.WriteString(space.String())
	return bw.Flush()
}

// ReadSpace parses a configuration space. Boundary padding is re-applied
// on load.
func ReadSpace(r io.Reader) (*cspace.Space, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := make([]int, 0, 3)
	for _, name := range []string{"agent radius", "width", "height"} {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformed, name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		header = append(header, v)
	}

	radius := header[0]
	shape := grid.Shape{Width: header[1], Height: header[2]}
	if !shape.Fits(cspace.MaxCells) {
		return nil, fmt.Errorf("%w: grid %v", ErrMalformed, shape)
	}

	// Rows are checked as they arrive, so the header only hints the capacity
	data := make([]cspace.State, 0, min(shape.Size(), maxPrealloc))
	row := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if row == shape.Height {
			return nil, fmt.Errorf("%w: more than %d rows", ErrMalformed, shape.Height)
		}

		fields := strings.Fields(line)
		if len(fields) != shape.Width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrMalformed, row, len(fields), shape.Width)
		}
		for col, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < int(cspace.Free) || v > int(cspace.Padded) {
				return nil, fmt.Errorf("%w: row %d col %d: bad state %q", ErrMalformed, row, col, f)
			}
			data = append(data, cspace.State(v))
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration space: %w", err)
	}
	if row != shape.Height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrMalformed, row, shape.Height)
	}

	states, err := grid.DataMapFrom(shape, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cspace.FromStates(states, radius)
}

// SaveSpace writes a configuration space file, creating parent directories
func SaveSpace(filename string, space *cspace.Space) error {
	return writeFile(filename, func(w io.Writer) error { return WriteSpace(w, space) })
}

// LoadSpace reads a configuration space file
func LoadSpace(filename string) (*cspace.Space, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration space: %w", err)
	}
	defer f.Close()

	space, err := ReadSpace(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return space, nil
}

func writeFile(filename string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}
