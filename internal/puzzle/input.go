package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hexbeam/hexbeam/internal/geometry"
)

// Input is the parsed solver CLI input: a side length n and the
// (2n-1)x(2n-1) board of tile ids, -1 marking invalid cells.
type Input struct {
	N     int
	Board [][]int32
}

// ParseInput reads the solver's stdin format: line 1 is n; lines 2..2n
// are row i's valid-cell tile ids, left to right, whitespace-separated.
// Malformed input (non-numeric token, wrong row length, n out of range)
// is reported as a descriptive error.
func ParseInput(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	nextLine := func() (string, bool) {
		for sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	line, ok := nextLine()
	if !ok {
		return nil, fmt.Errorf("hexbeam: empty input, expected side length n on line 1")
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("hexbeam: line 1: expected integer side length, got %q", line)
	}
	if n < 2 {
		return nil, fmt.Errorf("hexbeam: side length n must be >= 2, got %d", n)
	}

	geo := geometry.New(n)
	size := geo.Size
	board := make([][]int32, size)
	for i := range board {
		board[i] = make([]int32, size)
		for j := range board[i] {
			board[i][j] = -1
		}
	}

	for i := 0; i < size; i++ {
		rowLine, ok := nextLine()
		if !ok {
			return nil, fmt.Errorf("hexbeam: line %d: expected row %d of the board, got EOF", i+2, i)
		}
		fields := strings.Fields(rowLine)
		want := size - absInt(n-1-i)
		if len(fields) != want {
			return nil, fmt.Errorf("hexbeam: row %d: expected %d tile ids, got %d", i, want, len(fields))
		}

		col := 0
		for j := 0; j < size; j++ {
			if !geo.Valid(i, j) {
				continue
			}
			v, err := strconv.Atoi(fields[col])
			if err != nil {
				return nil, fmt.Errorf("hexbeam: row %d: malformed tile id %q", i, fields[col])
			}
			board[i][j] = int32(v)
			col++
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("hexbeam: reading input: %w", err)
	}

	return &Input{N: n, Board: board}, nil
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
