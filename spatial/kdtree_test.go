package spatial

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func bruteWithin(points []Point, q Point, radius float64) []int {
	found := []int{}
	for i, p := range points {
		if sqDistance(p, q) <= radius*radius {
			found = append(found, i)
		}
	}
	sort.Ints(found)
	return found
}

func TestWithinMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	points := make([]Point, 500)
	for i := range points {
		points[i] = Point{rnd.Float64() * 50, rnd.Float64() * 50, rnd.Float64() * 50}
	}
	idx := NewIndex(points)

	if idx.Len() != len(points) {
		t.Errorf("expected %d points, got %d", len(points), idx.Len())
	}

	for _, radius := range []float64{0.5, 3, 8, 20} {
		for i := 0; i < 25; i++ {
			q := Point{rnd.Float64() * 50, rnd.Float64() * 50, rnd.Float64() * 50}
			expected := bruteWithin(points, q, radius)
			actual := idx.Within(q, radius)
			if len(expected) == 0 && len(actual) == 0 {
				continue
			}
			if !reflect.DeepEqual(expected, actual) {
				t.Errorf("radius %.1f around %v: expected %v, got %v", radius, q, expected, actual)
			}
		}
	}
}

func TestWithinInclusive(t *testing.T) {
	points := []Point{{0, 0, 0}, {3, 0, 0}, {0, 4, 0}, {10, 10, 10}}
	idx := NewIndex(points)

	actual := idx.Within(Point{0, 0, 0}, 0)
	if !reflect.DeepEqual(actual, []int{0}) {
		t.Errorf("expected [0] at radius 0, got %v", actual)
	}

	actual = idx.Within(Point{0, 0, 0}, 4)
	if !reflect.DeepEqual(actual, []int{0, 1, 2}) {
		t.Errorf("expected [0 1 2] at radius 4, got %v", actual)
	}
}

func TestWithinDuplicatePoints(t *testing.T) {
	points := []Point{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {2, 2, 2}}
	idx := NewIndex(points)

	actual := idx.Within(Point{1, 1, 1}, 0)
	if !reflect.DeepEqual(actual, []int{0, 1, 2}) {
		t.Errorf("expected all coincident points, got %v", actual)
	}
}

func TestWithinEmptyAndNegative(t *testing.T) {
	if got := NewIndex(nil).Within(Point{}, 10); len(got) != 0 {
		t.Errorf("expected no points from an empty index, got %v", got)
	}

	idx := NewIndex([]Point{{0, 0, 0}})
	if got := idx.Within(Point{}, -1); len(got) != 0 {
		t.Errorf("expected no points for a negative radius, got %v", got)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Point{0, 0, 0}, Point{1, 2, 2}); d != 3 {
		t.Errorf("expected 3, got %f", d)
	}
}
