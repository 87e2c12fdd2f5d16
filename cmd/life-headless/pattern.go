package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gpulife/internal/core"
)

// readPattern loads a plain-text pattern: '#', 'O' and '*' are alive, any
// other character is dead. Lines starting with '!' are comments. Short lines
// are padded with dead cells.
func readPattern(path string) (core.Size, []uint8, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Size{}, nil, fmt.Errorf("read pattern: %w", err)
	}
	defer f.Close()
	return parsePattern(f)
}

func parsePattern(r io.Reader) (core.Size, []uint8, error) {
	var rows []string
	width := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		rows = append(rows, line)
		width = max(width, len(line))
	}
	if err := sc.Err(); err != nil {
		return core.Size{}, nil, fmt.Errorf("read pattern: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	size := core.Size{W: width, H: len(rows)}
	if !size.Valid() {
		return core.Size{}, nil, fmt.Errorf("read pattern: empty pattern")
	}
	grid := core.NewByteGrid(size.W, size.H)
	for y, row := range rows {
		for x, c := range []byte(row) {
			if c == '#' || c == 'O' || c == '*' {
				grid.Set(x, y, 1)
			}
		}
	}
	return size, grid.Cells(), nil
}
