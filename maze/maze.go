/*
Package maze carves grid mazes on a two step lattice.

Every odd coordinate cell is carved by a randomized depth first backtracker
starting at (1,1), so all odd lattice cells form one connected component. A
light post process opens extra loops. The outer border always stays WALL.
*/
package maze

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/zucenko/mazerun/model"
)

// WallRemoveChance is the chance an interior wall between two open cells is knocked out.
const WallRemoveChance = 0.05

// Rand is the randomness the generator draws on. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

var steps = [4]model.Position{
	{X: 0, Y: -2},
	{X: 2, Y: 0},
	{X: 0, Y: 2},
	{X: -2, Y: 0},
}

// Generate returns a width x height maze with its start and end cells marked.
// Width and height are expected to be odd and at least 5.
func Generate(width, height int, rng Rand) (model.Grid, model.Position, model.Position) {
	grid := model.NewGrid(width, height)
	interior := func(x, y int) bool {
		return x > 0 && x < width-1 && y > 0 && y < height-1
	}

	var carve func(x, y int)
	carve = func(x, y int) {
		grid[y][x] = model.Path
		dirs := steps
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
		for _, d := range dirs {
			nx, ny := x+d.X, y+d.Y
			if interior(nx, ny) && grid[ny][nx] == model.Wall {
				grid[y+d.Y/2][x+d.X/2] = model.Path
				carve(nx, ny)
			}
		}
	}

	start := model.Position{X: 1, Y: 1}
	carve(start.X, start.Y)

	end := model.Position{X: width - 2, Y: height - 2}
	if grid[end.Y][end.X] == model.Wall {
		grid[end.Y][end.X] = model.Path
		if grid[end.Y][end.X-1] == model.Wall && grid[end.Y-1][end.X] == model.Wall {
			grid[end.Y][end.X-1] = model.Path
		}
	}

	grid[start.Y][start.X] = model.Start
	grid[end.Y][end.X] = model.End

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if grid[y][x] != model.Wall || rng.Float64() >= WallRemoveChance {
				continue
			}
			open := 0
			for _, d := range model.Directions {
				if grid.Walkable(model.Position{X: x, Y: y}.Add(d)) {
					open++
				}
			}
			if open >= 2 {
				grid[y][x] = model.Path
			}
		}
	}

	return grid, start, end
}

// Reachable flood fills the walkable cells 4-connected to from.
func Reachable(grid model.Grid, from model.Position) mapset.Set[model.Position] {
	visited := mapset.New[model.Position]()
	if !grid.Walkable(from) {
		return visited
	}
	queue := []model.Position{from}
	visited.Put(from)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range model.Directions {
			next := current.Add(d)
			if grid.Walkable(next) && !visited.Has(next) {
				visited.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// Open returns every walkable interior cell in row major order.
func Open(grid model.Grid) []model.Position {
	cells := make([]model.Position, 0)
	for y := 1; y < grid.Height()-1; y++ {
		for x := 1; x < grid.Width()-1; x++ {
			if grid[y][x] != model.Wall {
				cells = append(cells, model.Position{X: x, Y: y})
			}
		}
	}
	return cells
}
