package traffic

import(
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/skypies/geo"
)

// A Polygon is a simple ring of vertices; the closing vertex is optional. All the tests on it
// are planar, in (long,lat) space.
type Polygon []geo.Latlong

func (p Polygon)String() string {
	s := []string{}
	for _,v := range p { s = append(s, fmt.Sprintf("%.4f,%.4f", v.Long, v.Lat)) }
	return "poly[" + strings.Join(s, ";") + "]"
}

// ParsePolygon reads "long,lat;long,lat;..." (the command line form).
func ParsePolygon(s string) (Polygon, error) {
	p := Polygon{}
	for _,pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" { continue }
		var long,lat float64
		if _,err := fmt.Sscanf(pair, "%f,%f", &long, &lat); err != nil {
			return nil, invalidInput("ParsePolygon", "vertex %q: %v", pair, err)
		}
		p = append(p, geo.Latlong{Lat:lat, Long:long})
	}
	if len(p) < 3 {
		return nil, invalidInput("ParsePolygon", "need at least three vertices, got %d", len(p))
	}
	return p, nil
}

func (p Polygon)ring() orb.Ring {
	r := orb.Ring{}
	for _,v := range p { r = append(r, orb.Point{v.Long, v.Lat}) }
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// ContainsPoint counts points on the boundary as inside.
func (p Polygon)ContainsPoint(pt orb.Point) bool {
	if len(p) < 3 { return false }
	return planar.RingContains(p.ring(), pt)
}

// ContainsLine is true if no part of the line is outside the polygon. Running along an edge
// counts as inside.
func (p Polygon)ContainsLine(line orb.LineString) bool {
	if len(p) < 3 || len(line) == 0 { return false }
	in,out := p.classify(line)
	return in && !out
}

// CrossesLine is true if the line is partly inside and partly outside the polygon.
func (p Polygon)CrossesLine(line orb.LineString) bool {
	if len(p) < 3 || len(line) == 0 { return false }
	in,out := p.classify(line)
	return in && out
}

// classify reports whether any part of the line is in (or on) the polygon, and whether any part
// is outside it. Each segment is cut wherever it meets the boundary; between two cuts a piece
// is wholly in or wholly out, so testing its midpoint settles it. A line that only touches the
// boundary at a point, from outside, is not in.
func (p Polygon)classify(line orb.LineString) (in, out bool) {
	r := p.ring()
	note := func(pt orb.Point) {
		if planar.RingContains(r, pt) { in = true } else { out = true }
	}

	note(line[0])
	for i:=1; i<len(line); i++ {
		a,b := line[i-1], line[i]
		cuts := boundaryCuts(a, b, r)
		for k:=1; k<len(cuts); k++ {
			note(along(a, b, (cuts[k-1]+cuts[k])/2))
		}
		note(b)
		if in && out { return }
	}
	return
}

// boundaryCuts returns the sorted parameters in [0,1] at which a->b meets the ring; always
// including both ends.
func boundaryCuts(a, b orb.Point, r orb.Ring) []float64 {
	cuts := []float64{0, 1}
	if a == b { return cuts[:1] }
	for j:=1; j<len(r); j++ {
		c,d := r[j-1], r[j]
		if t,ok := segmentCrossing(a, b, c, d); ok { cuts = append(cuts, t) }
		for _,v := range []orb.Point{c, d} {
			if orientation(a, b, v) == 0 && onSegment(a, b, v) {
				cuts = append(cuts, param(a, b, v))
			}
		}
	}
	sort.Float64s(cuts)

	ret := cuts[:1]
	for _,t := range cuts[1:] {
		if t-ret[len(ret)-1] > 1e-12 { ret = append(ret, t) }
	}
	return ret
}

// segmentCrossing finds where a->b properly crosses c->d (a point strictly inside both).
// Touching at an end, and running along each other, are left to the vertex checks.
func segmentCrossing(a, b, c, d orb.Point) (float64, bool) {
	d1 := orientation(c, d, a)
	d2 := orientation(c, d, b)
	d3 := orientation(a, b, c)
	d4 := orientation(a, b, d)
	if d1*d2 >= 0 || d3*d4 >= 0 { return 0, false }

	den := cross(sub(b, a), sub(d, c))
	return cross(sub(c, a), sub(d, c)) / den, true
}

// Sign of the cross product (b-a)x(c-a); +1 if c is left of a->b, -1 if right, 0 if on it.
func orientation(a, b, c orb.Point) int {
	v := cross(sub(b, a), sub(c, a))
	switch {
	case v > 0: return 1
	case v < 0: return -1
	}
	return 0
}

// onSegment assumes c is collinear with a->b.
func onSegment(a, b, c orb.Point) bool {
	return c[0] >= math.Min(a[0], b[0]) && c[0] <= math.Max(a[0], b[0]) &&
		c[1] >= math.Min(a[1], b[1]) && c[1] <= math.Max(a[1], b[1])
}

func sub(a, b orb.Point) orb.Point  { return orb.Point{a[0]-b[0], a[1]-b[1]} }
func cross(a, b orb.Point) float64 { return a[0]*b[1] - a[1]*b[0] }

// param is where the (collinear) point c sits along a->b, as a fraction.
func param(a, b, c orb.Point) float64 {
	ab,ac := sub(b, a), sub(c, a)
	return (ab[0]*ac[0] + ab[1]*ac[1]) / (ab[0]*ab[0] + ab[1]*ab[1])
}

func along(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

// lineString is the flight's path, in time order, over the reports that have a position.
func (f *Flight)lineString() orb.LineString {
	ls := orb.LineString{}
	for _,r := range f.reports.Sorted() {
		if r.HasPosition() { ls = append(ls, orb.Point{r.Long, r.Lat}) }
	}
	return ls
}

// Intersects is true if any part of the flight's path lies in the polygon; it is either wholly
// contained, or crosses in or out.
func (f *Flight)Intersects(poly Polygon) bool {
	line := f.lineString()
	if len(line) == 0 { return false }
	return poly.ContainsLine(line) || poly.CrossesLine(line)
}
