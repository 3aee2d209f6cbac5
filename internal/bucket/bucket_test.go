package bucket

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func instants() []time.Time {
	return []time.Time{
		time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 2, 18, 30, 0, 0, time.UTC),
	}
}

func TestBuildStructure(t *testing.T) {
	root := Build(instants())

	assert.Equal(t, LevelRoot, root.Level)
	assert.Len(t, root.Dates, 5)
	assert.Equal(t, []int{20}, root.Indice)

	century := root.Child(20)
	if century == nil {
		t.Fatal("century node missing")
	}
	assert.Equal(t, LevelCentury, century.Level)
	assert.Equal(t, []int{2024, 2025}, century.Indice)

	y2024 := century.Child(2024)
	if y2024 == nil {
		t.Fatal("year node missing")
	}
	assert.Len(t, y2024.Dates, 4)
	assert.Equal(t, []int{2, 3}, y2024.Indice) // March, April (0-based)

	march := y2024.Child(2)
	if march == nil {
		t.Fatal("month node missing")
	}
	assert.Equal(t, []int{5, 12}, march.Indice)

	day5 := march.Child(5)
	if day5 == nil {
		t.Fatal("day node missing")
	}
	assert.Equal(t, []int{9, 14}, day5.Indice)

	hour9 := day5.Child(9)
	if hour9 == nil {
		t.Fatal("hour node missing")
	}
	assert.Equal(t, LevelHour, hour9.Level)
	assert.Nil(t, hour9.Children)
	assert.Len(t, hour9.Dates, 1)
}

func TestBuildDeterministicUnderShuffle(t *testing.T) {
	base := instants()
	want := Build(base)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]time.Time, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Build(shuffled), "shuffle %d", i)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	in := []time.Time{
		time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	Build(in)
	assert.True(t, in[0].After(in[1]), "input order changed")
}

func TestNodeDatesSortedAscending(t *testing.T) {
	root := Build(instants())

	var walk func(n *Node)
	walk = func(n *Node) {
		for i := 1; i < len(n.Dates); i++ {
			assert.False(t, n.Dates[i].Before(n.Dates[i-1]),
				"%s node %d has unsorted dates", n.Level, n.Key)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
}

func TestLevelNextSaturates(t *testing.T) {
	assert.Equal(t, LevelYear, LevelCentury.Next())
	assert.Equal(t, LevelTime, LevelHour.Next())
	assert.Equal(t, LevelTime, LevelTime.Next())
}

func TestDefaultDrillSingleMonth(t *testing.T) {
	root := Build([]time.Time{
		time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC),
	})

	path, level := DefaultDrill(root)
	assert.Equal(t, LevelDay, level)
	assert.Equal(t, []Path{
		{Level: LevelCentury, Key: 20},
		{Level: LevelYear, Key: 2024},
		{Level: LevelMonth, Key: 2},
	}, path)
}

func TestDefaultDrillStopsAtFirstChoice(t *testing.T) {
	root := Build([]time.Time{
		time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 5, 9, 0, 0, 0, time.UTC),
	})

	path, level := DefaultDrill(root)
	assert.Equal(t, LevelMonth, level)
	assert.Equal(t, []Path{
		{Level: LevelCentury, Key: 20},
		{Level: LevelYear, Key: 2024},
	}, path)
}

func TestDefaultDrillNeverPastMonth(t *testing.T) {
	// A single instant still stops the pre-descent at the month level.
	root := Build([]time.Time{
		time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
	})

	path, level := DefaultDrill(root)
	assert.Equal(t, LevelDay, level)
	assert.Len(t, path, 3)
}
