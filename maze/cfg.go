package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zucenko/mazerun/model"
)

var ErrNoStart = errors.New("maze has no start cell")
var ErrNoEnd = errors.New("maze has no end cell")

// Read parses a text layout: '#' wall, '.' or ' ' path, 'S' start, 'E' end.
// Rows must all have the same width.
func Read(reader io.Reader) (grid model.Grid, start, end model.Position, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	grid = make(model.Grid, 0)
	starts, ends := 0, 0

	for row := 0; scanner.Scan(); row++ {
		s := strings.TrimRight(scanner.Text(), "\r")
		if len(grid) > 0 && len(s) != grid.Width() {
			return nil, start, end, fmt.Errorf("row %d: width %d, want %d", row, len(s), grid.Width())
		}
		line := make([]model.Cell, 0, len(s))
		for col, char := range s {
			switch char {
			case '#':
				line = append(line, model.Wall)
			case '.', ' ':
				line = append(line, model.Path)
			case 'S':
				line = append(line, model.Start)
				start = model.Position{X: col, Y: row}
				starts++
			case 'E':
				line = append(line, model.End)
				end = model.Position{X: col, Y: row}
				ends++
			default:
				return nil, start, end, fmt.Errorf("row %d col %d: unexpected %q", row, col, char)
			}
		}
		grid = append(grid, line)
	}
	if err = scanner.Err(); err != nil {
		return nil, start, end, err
	}
	if starts != 1 {
		return nil, start, end, fmt.Errorf("%w (found %d)", ErrNoStart, starts)
	}
	if ends != 1 {
		return nil, start, end, fmt.Errorf("%w (found %d)", ErrNoEnd, ends)
	}
	return grid, start, end, nil
}

// Parse is Read over in-memory rows.
func Parse(rows ...string) (model.Grid, model.Position, model.Position, error) {
	return Read(strings.NewReader(strings.Join(rows, "\n")))
}

// Render is the inverse of Read.
func Render(grid model.Grid) string {
	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			switch c {
			case model.Wall:
				b.WriteByte('#')
			case model.Start:
				b.WriteByte('S')
			case model.End:
				b.WriteByte('E')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
