// Package spatial implements a read-only radius search index over 3-D points.
//
// The index never holds the caller's values, only their positions in the
// slice the index was built from, so it stays valid as long as that slice is
// not reordered.
package spatial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is a 3-D coordinate (x, y, z).
type Point [3]float64

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Sqrt(sqDistance(a, b))
}

func sqDistance(a, b Point) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

// Index is a KD-tree over a fixed set of points.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// NewIndex builds the tree over points. The slice is copied.
func NewIndex(points []Point) *Index {
	es := make(entries, len(points))
	for i, p := range points {
		es[i] = entry{p: p, index: i}
	}

	idx := &Index{n: len(points)}
	if len(es) > 0 {
		idx.tree = kdtree.New(es, false)
	}
	return idx
}

// Len returns the number of indexed points.
func (idx *Index) Len() int {
	return idx.n
}

// Within returns, in ascending order, the positions of every indexed point
// whose distance to q is less than or equal to radius.
func (idx *Index) Within(q Point, radius float64) []int {
	if idx.tree == nil || radius < 0 || math.IsNaN(radius) {
		return nil
	}

	k := newRadiusKeeper(radius * radius)
	idx.tree.NearestSet(k, entry{p: q, index: -1})

	found := make([]int, 0, len(k.found))
	for _, c := range k.found {
		found = append(found, c.Comparable.(entry).index)
	}
	sort.Ints(found)
	return found
}

// entry is a point tagged with its position in the source slice.
type entry struct {
	p     Point
	index int
}

func (e entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return e.p[d] - c.(entry).p[d]
}

func (e entry) Dims() int { return 3 }

// Distance is squared, as the tree compares it against squared plane offsets.
func (e entry) Distance(c kdtree.Comparable) float64 {
	return sqDistance(e.p, c.(entry).p)
}

type entries []entry

func (es entries) Index(i int) kdtree.Comparable         { return es[i] }
func (es entries) Len() int                              { return len(es) }
func (es entries) Pivot(d kdtree.Dim) int                { return plane{Dim: d, entries: es}.Pivot() }
func (es entries) Slice(start, end int) kdtree.Interface { return es[start:end] }

type plane struct {
	kdtree.Dim
	entries
}

func (p plane) Less(i, j int) bool {
	return p.entries[i].p[p.Dim] < p.entries[j].p[p.Dim]
}

func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{Dim: p.Dim, entries: p.entries[start:end]}
}

func (p plane) Swap(i, j int) {
	p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
}

// radiusKeeper retains every candidate within a fixed squared distance.
// Max is a constant bound with a non-nil Comparable: NearestSet must not
// treat it as a sentinel and pop a kept point tied with it.
type radiusKeeper struct {
	found []kdtree.ComparableDist
	bound kdtree.ComparableDist
}

func newRadiusKeeper(sqRadius float64) *radiusKeeper {
	return &radiusKeeper{
		bound: kdtree.ComparableDist{Comparable: entry{index: -1}, Dist: sqRadius},
	}
}

func (k *radiusKeeper) Keep(c kdtree.ComparableDist) {
	if c.Dist <= k.bound.Dist {
		k.found = append(k.found, c)
	}
}

func (k *radiusKeeper) Max() kdtree.ComparableDist { return k.bound }

func (k *radiusKeeper) Len() int           { return len(k.found) }
func (k *radiusKeeper) Less(i, j int) bool { return k.found[i].Dist > k.found[j].Dist }
func (k *radiusKeeper) Swap(i, j int)      { k.found[i], k.found[j] = k.found[j], k.found[i] }

func (k *radiusKeeper) Push(x interface{}) {
	k.found = append(k.found, x.(kdtree.ComparableDist))
}

func (k *radiusKeeper) Pop() interface{} {
	last := k.found[len(k.found)-1]
	k.found = k.found[:len(k.found)-1]
	return last
}
