package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"grid-planner/internal/grid"
)

// WritePath writes one "<x> <y>" line per cell
func WritePath(w io.Writer, path []grid.Coord) error {
	bw := bufio.NewWriter(w)
	for _, c := range path {
		fmt.Fprintf(bw, "%d %d\n", c.X, c.Y)
	}
	return bw.Flush()
}

// ReadPath parses a path file. Blank lines are ignored.
func ReadPath(r io.Reader) ([]grid.Coord, error) {
	path := []grid.Coord{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"<x> <y>\", got %q", ErrMalformed, line, text)
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil || x < 0 || y < 0 {
			return nil, fmt.Errorf("%w: line %d: bad cell %q", ErrMalformed, line, text)
		}
		path = append(path, grid.Coord{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read path: %w", err)
	}
	return path, nil
}

// SavePath writes a path file, creating parent directories
func SavePath(filename string, path []grid.Coord) error {
	return writeFile(filename, func(w io.Writer) error { return WritePath(w, path) })
}

// LoadPath reads a path file
func LoadPath(filename string) ([]grid.Coord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open path: %w", err)
	}
	defer f.Close()

	path, err := ReadPath(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return path, nil
}
