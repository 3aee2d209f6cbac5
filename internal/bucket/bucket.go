// Package bucket groups an arbitrary set of allowed instants into a
// nested century -> year -> month -> day -> hour index. Hierarchical
// pickers walk this index for progressive disclosure: show centuries
// first, drill into a year, then a month, and so on down to the concrete
// instants.
package bucket

import (
	"sort"
	"time"
)

// Level names one depth of the index. LevelTime is the leaf below hours,
// where concrete instants are chosen.
type Level int

const (
	// LevelRoot is the synthetic level of the index root, whose children
	// are centuries.
	LevelRoot Level = iota - 1

	LevelCentury
	LevelYear
	LevelMonth
	LevelDay
	LevelHour
	LevelTime
)

func (l Level) String() string {
	switch l {
	case LevelCentury:
		return "century"
	case LevelYear:
		return "year"
	case LevelMonth:
		return "month"
	case LevelDay:
		return "day"
	case LevelHour:
		return "hour"
	case LevelTime:
		return "time"
	default:
		return "unknown"
	}
}

// Next returns the level one step deeper, saturating at LevelTime.
func (l Level) Next() Level {
	if l >= LevelHour {
		return LevelTime
	}
	return l + 1
}

// Node is one group in the index. Children is keyed by the child's
// bucket number at Level.Next(): century number, year, 0-based month,
// day of month, or hour. Dates is the flat, ascending list of every
// instant reachable under this node; Indice is the ascending list of
// populated child keys. Hour nodes have no children; their Dates are the
// selectable instants themselves.
type Node struct {
	Level    Level
	Key      int
	Children map[int]*Node
	Dates    []time.Time
	Indice   []int
}

// Child returns the child node under key, or nil.
func (n *Node) Child(key int) *Node {
	if n == nil || n.Children == nil {
		return nil
	}
	return n.Children[key]
}

// keyAt extracts the bucket key of t for a child level.
func keyAt(t time.Time, l Level) int {
	switch l {
	case LevelCentury:
		return t.Year() / 100
	case LevelYear:
		return t.Year()
	case LevelMonth:
		return int(t.Month()) - 1
	case LevelDay:
		return t.Day()
	case LevelHour:
		return t.Hour()
	default:
		return 0
	}
}

// Build constructs the index from the given instants. The input list is
// not mutated; building twice from the same set of instants, in any
// order, produces a structurally equal index (all Dates and Indice lists
// are sorted ascending). Any change to the allowed set requires a full
// rebuild; there is no incremental update.
func Build(dates []time.Time) *Node {
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	root := &Node{Level: LevelRoot, Key: -1}
	root.Dates = sorted

	for _, t := range sorted {
		node := root
		for l := LevelCentury; l <= LevelHour; l++ {
			key := keyAt(t, l)
			if node.Children == nil {
				node.Children = make(map[int]*Node)
			}
			child := node.Children[key]
			if child == nil {
				child = &Node{Level: l, Key: key}
				node.Children[key] = child
				node.Indice = append(node.Indice, key)
			}
			child.Dates = append(child.Dates, t)
			node = child
		}
	}

	sortIndices(root)
	return root
}

func sortIndices(n *Node) {
	sort.Ints(n.Indice)
	for _, child := range n.Children {
		sortIndices(child)
	}
}

// Path is a concrete drill position inside the index, one key per
// traversed level.
type Path struct {
	Level Level
	Key   int
}

// DefaultDrill pre-descends through every level that has exactly one
// populated child, so a picker over, say, a single month of instants
// opens directly at that month instead of asking the user to pick the
// only century, then the only year. It returns the traversed path and
// the level at which choices actually begin.
func DefaultDrill(root *Node) ([]Path, Level) {
	var path []Path
	node := root
	level := LevelCentury

	// Stop pre-descending past days: a sole populated day should still
	// be presented in its month context.
	for level <= LevelMonth {
		if node == nil || len(node.Indice) != 1 {
			break
		}
		sole := node.Indice[0]
		path = append(path, Path{Level: level, Key: sole})
		node = node.Child(sole)
		level = level.Next()
	}

	return path, level
}
