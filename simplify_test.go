package traffic

import(
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// A V shape; up and to the right for five steps, then down and to the right.
func vee() Table {
	tbl := Table{}
	for i:=0; i<=10; i++ {
		lat := 37.0 + 0.01*float64(i)
		if i > 5 { lat = 37.0 + 0.01*float64(10-i) }
		tbl = append(tbl, rep(float64(i*10), lat, -122.0 + 0.01*float64(i), float64(i*100)))
	}
	return tbl
}

func TestSimplifyVee(t *testing.T) {
	tbl := vee()
	tbl = append(tbl, atSecs(25)...) // no position; gets dropped

	s,err := NewFlight(tbl).Simplify(100, nil)
	if err != nil { t.Fatal(err) }

	expected := []time.Time{base, base.Add(50*time.Second), base.Add(100*time.Second)}
	if diff := cmp.Diff(expected, timestamps(s.Reports())); diff != "" {
		t.Errorf("kept reports (-want +got):\n%s", diff)
	}
	// Survivors are whole reports, not just points
	if s.Reports()[1].Altitude != 500 || s.Reports()[1].Callsign != "SKW750" {
		t.Errorf("apex report lost its fields: %s", s.Reports()[1])
	}
}

func TestSimplifyShuffled(t *testing.T) {
	tbl := vee()
	shuffled := Table{}
	for _,i := range []int{7, 2, 10, 0, 5, 9, 3, 1, 8, 6, 4} {
		shuffled = append(shuffled, tbl[i])
	}

	s,err := NewFlight(shuffled).Simplify(100, nil)
	if err != nil { t.Fatal(err) }

	expected := []time.Time{base, base.Add(50*time.Second), base.Add(100*time.Second)}
	if diff := cmp.Diff(expected, timestamps(s.Reports())); diff != "" {
		t.Errorf("row order leaked into the path (-want +got):\n%s", diff)
	}
}

// segmentDist is the planar distance from p to the segment a-b.
func segmentDist(px,py, ax,ay, bx,by float64) float64 {
	dx,dy := bx-ax, by-ay
	if dx != 0 || dy != 0 {
		u := ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)
		u = math.Max(0, math.Min(1, u))
		ax,ay = ax + u*dx, ay + u*dy
	}
	return math.Hypot(px-ax, py-ay)
}

func TestSimplifyBound(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	tbl := Table{}
	for i:=0; i<200; i++ {
		lat := 37.0 + 0.001*float64(i) + 0.002*(rnd.Float64()-0.5)
		long := -122.0 + 0.0005*float64(i) + 0.002*(rnd.Float64()-0.5)
		tbl = append(tbl, rep(float64(i*5), lat, long, 1000))
	}
	f := NewFlight(tbl)
	p,err := AutoProjection(f)
	if err != nil { t.Fatal(err) }
	pts,err := f.Projected(p)
	if err != nil { t.Fatal(err) }

	tolerance := 50.0
	s,err := f.Simplify(tolerance, p)
	if err != nil { t.Fatal(err) }
	if s.Len() < 3 || s.Len() >= len(pts) {
		t.Fatalf("expected some, but not all, points dropped; kept %d of %d", s.Len(), len(pts))
	}

	kept := map[time.Time]bool{}
	for _,r := range s.Reports() { kept[r.Timestamp] = true }
	if !kept[pts[0].Timestamp] || !kept[pts[len(pts)-1].Timestamp] {
		t.Fatalf("endpoints must survive")
	}

	prev := 0
	for i:=1; i<len(pts); i++ {
		if !kept[pts[i].Timestamp] { continue }
		a,b := pts[prev], pts[i]
		for j:=prev+1; j<i; j++ {
			if d := segmentDist(pts[j].X,pts[j].Y, a.X,a.Y, b.X,b.Y); d > tolerance {
				t.Errorf("dropped point %d is %.1fm from its retained neighbours %d-%d", j, d, prev, i)
			}
		}
		prev = i
	}
}

func TestSimplifyTiny(t *testing.T) {
	f := NewFlight(Table{rep(0, 37, -122, 0), rep(10, 37.5, -122, 0)})
	s,err := f.Simplify(1e6, nil)
	if err != nil || s.Len() != 2 {
		t.Errorf("two points: expected both kept, got %v (%v)", s, err)
	}
}

func TestSimplifyErrors(t *testing.T) {
	if _,err := NewFlight(vee()).Simplify(-1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative tolerance: expected ErrInvalidInput, got %v", err)
	}
	if _,err := NewFlight(atSecs(0, 1, 2)).Simplify(10, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no positions: expected ErrInvalidInput, got %v", err)
	}
}
