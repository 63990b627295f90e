package traffic

import(
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/skypies/geo"
)

// makeFlight puts a report at each point, a minute apart.
func makeFlight(pts []geo.Latlong) *Flight {
	tbl := Table{}
	for i,pt := range pts {
		tbl = append(tbl, rep(float64(i*60), pt.Lat, pt.Long, float64(i*100)))
	}
	return NewFlight(tbl)
}

func TestPolygonIntersection(t *testing.T) {
	// A square from (-1,-1) to (1,1)
	sq,err := ParsePolygon("-1,-1; 1,-1; 1,1; -1,1")
	if err != nil { t.Fatal(err) }

	tests := []struct{
		Name       string
		P          []geo.Latlong
		Contains   bool
		Crosses    bool
		Intersects bool
	}{
		{"outside",           []geo.Latlong{{Lat:5, Long:5}, {Lat:6, Long:6}, {Lat:7, Long:5}},     false, false, false},
		{"contained",         []geo.Latlong{{Lat:0, Long:0}, {Lat:0.5, Long:0.5}},        true,  false, true},
		{"enter",             []geo.Latlong{{Lat:0, Long:-5}, {Lat:0, Long:0}},           false, true,  true},
		{"exit",              []geo.Latlong{{Lat:0, Long:0}, {Lat:5, Long:0}},            false, true,  true},
		{"enter,exit",        []geo.Latlong{{Lat:0, Long:-5}, {Lat:0, Long:0}, {Lat:0, Long:5}},    false, true,  true},
		{"overlap, no point", []geo.Latlong{{Lat:0, Long:-5}, {Lat:0, Long:5}},           false, true,  true},
		{"clips a corner",    []geo.Latlong{{Lat:0, Long:-1.5}, {Lat:1.5, Long:0}},       false, true,  true},
		{"on the edge",       []geo.Latlong{{Lat:0, Long:1}, {Lat:0.5, Long:1}},          true,  false, true},
		{"corner to corner",  []geo.Latlong{{Lat:-2, Long:-2}, {Lat:2, Long:2}},          false, true,  true},
		{"along an edge",     []geo.Latlong{{Lat:-1, Long:-2}, {Lat:-1, Long:2}},         false, true,  true},
		{"touches a corner",  []geo.Latlong{{Lat:0, Long:-2}, {Lat:-2, Long:0}},          false, false, false},
		{"single point in",   []geo.Latlong{{Lat:0.1, Long:0.1}},               true,  false, true},
		{"nothing",           []geo.Latlong{},                        false, false, false},
	}

	for _,test := range tests {
		f := makeFlight(test.P)
		line := f.lineString()
		if got := sq.ContainsLine(line); got != test.Contains {
			t.Errorf("%s: ContainsLine expected %v, got %v", test.Name, test.Contains, got)
		}
		if got := sq.CrossesLine(line); got != test.Crosses {
			t.Errorf("%s: CrossesLine expected %v, got %v", test.Name, test.Crosses, got)
		}
		if got := f.Intersects(sq); got != test.Intersects {
			t.Errorf("%s: Intersects expected %v, got %v", test.Name, test.Intersects, got)
		}
	}
}

func TestIntersectsUsesTimeOrder(t *testing.T) {
	sq,err := ParsePolygon("-1,-1; 1,-1; 1,1; -1,1")
	if err != nil { t.Fatal(err) }

	// Flown (-5,5) -> (5,5) -> (5,-5), well clear of the square. Taken in row order, the
	// first and last rows would make a line through the middle of it.
	rows := Table{rep(0, 5, -5, 0), rep(120, -5, 5, 0), rep(60, 5, 5, 0)}
	f := NewFlight(rows)
	if f.Intersects(sq) {
		t.Errorf("flight clear of the square reported as intersecting")
	}

	expected := orb.LineString{{-5, 5}, {5, 5}, {5, -5}}
	if diff := cmp.Diff(expected, f.lineString()); diff != "" {
		t.Errorf("lineString (-want +got):\n%s", diff)
	}
}

func TestConcavePolygon(t *testing.T) {
	// A U shape; the notch is x in (1,2), y above 1
	u,err := ParsePolygon("0,0; 3,0; 3,3; 2,3; 2,1; 1,1; 1,3; 0,3")
	if err != nil { t.Fatal(err) }

	if u.ContainsPoint(orb.Point{1.5, 2}) {
		t.Errorf("point in the notch should be outside")
	}
	if !u.ContainsPoint(orb.Point{0.5, 2}) || !u.ContainsPoint(orb.Point{2.5, 2}) {
		t.Errorf("points in the arms should be inside")
	}

	// Both ends in the arms, but the line crosses the notch
	across := orb.LineString{{0.5, 2}, {2.5, 2}}
	if u.ContainsLine(across) {
		t.Errorf("line across the notch should not be contained")
	}
	if !u.CrossesLine(across) {
		t.Errorf("line across the notch should cross")
	}

	// Over the top of the notch, between the tips of the arms; in at both ends, out in between
	tips := orb.LineString{{0, 3}, {3, 3}}
	if u.ContainsLine(tips) || !u.CrossesLine(tips) {
		t.Errorf("line between the arm tips should cross, not be contained")
	}

	below := orb.LineString{{0.5, 0.5}, {2.5, 0.5}}
	if !u.ContainsLine(below) || u.CrossesLine(below) {
		t.Errorf("line under the notch should be contained, not crossing")
	}
}

func TestParsePolygon(t *testing.T) {
	p,err := ParsePolygon("-122.5,37.4;-122.2,37.4;-122.2,37.7;-122.5,37.4")
	if err != nil { t.Fatal(err) }
	if len(p) != 4 || p[0].Long != -122.5 || p[0].Lat != 37.4 {
		t.Errorf("parsed %s", p)
	}
	// Already closed; ring() shouldn't add another
	if n := len(p.ring()); n != 4 {
		t.Errorf("closed polygon: expected ring of 4, got %d", n)
	}

	for _,bad := range []string{"", "1,1;2,2", "1,1;2,2;three,3"} {
		if _,err := ParsePolygon(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParsePolygon(%q): expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
