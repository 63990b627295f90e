package traffic

import(
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/skypies/geo"
)

func TestProjectionCenterIsOrigin(t *testing.T) {
	c := geo.Latlong{Lat:37.5, Long:-122.2}
	p := BuildProjection(c, -c.Long, [2]float64{37, 38})
	if x,y := p.Project(c.Long, c.Lat); math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("center projected to (%f,%f), expected origin", x, y)
	}

	// North is up, east is right
	xn,yn := p.Project(c.Long, c.Lat+0.1)
	xe,ye := p.Project(c.Long+0.1, c.Lat)
	if yn <= 0 || math.Abs(xn) > 1e-6 || xe <= 0 || math.Abs(ye) > 100 {
		t.Errorf("orientation: north->(%f,%f), east->(%f,%f)", xn, yn, xe, ye)
	}
}

func TestProjectionDegenerateCone(t *testing.T) {
	p := BuildProjection(geo.Latlong{}, 0, [2]float64{-10, 10})
	if !strings.HasPrefix(p.String(), "mercator") {
		t.Errorf("parallels symmetric about the equator should give mercator, got %s", p)
	}
	if x,y := p.Project(0, 0); math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("mercator origin: got (%f,%f)", x, y)
	}
}

func TestAutoProjectionScale(t *testing.T) {
	f := mustFlight(t, f1)
	p,err := AutoProjection(f)
	if err != nil { t.Fatal(err) }

	box,_ := f.Reports().BoundingBox()
	x1,y1 := p.Project(box.SW.Long, box.SW.Lat)
	x2,y2 := p.Project(box.NE.Long, box.NE.Lat)
	projected := math.Hypot(x2-x1, y2-y1)
	expected := GreatCircleDistance(box.SW, box.NE)
	if math.Abs(projected - expected) > 0.01 {
		t.Errorf("diagonal: expected %.3fm, got %.3fm", expected, projected)
	}

	// Every other pair should be close too, at this scale
	r := f.Reports().Sorted()
	xa,ya := p.Project(r[0].Long, r[0].Lat)
	xb,yb := p.Project(r[1].Long, r[1].Lat)
	if d,gc := math.Hypot(xb-xa, yb-ya), GreatCircleDistance(r[0].Latlong, r[1].Latlong); math.Abs(d-gc)/gc > 0.001 {
		t.Errorf("first hop: projected %.3fm, great circle %.3fm", d, gc)
	}
}

func TestComputeXY(t *testing.T) {
	tbl := Table{rep(0, 37, -122, 0), atSecs(5)[0], rep(10, 37.1, -122.1, 0)}
	f := NewFlight(tbl)

	xy,err := f.ComputeXY(nil)
	if err != nil { t.Fatal(err) }
	out := xy.Reports()
	if len(out) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(out))
	}
	for _,i := range []int{0, 2} {
		if _,ok := out[i].Numeric("x"); !ok {
			t.Errorf("[%d] no x column", i)
		}
		if _,ok := out[i].Numeric("y"); !ok {
			t.Errorf("[%d] no y column", i)
		}
	}
	if _,exists := out[1].Field("x"); exists {
		t.Errorf("unpositioned report should have no x column")
	}
	if f.Reports()[0].Extra != nil {
		t.Errorf("ComputeXY modified its receiver")
	}

	pts,err := f.Projected(nil)
	if err != nil || len(pts) != 2 {
		t.Errorf("Projected: expected 2 points, got %d (%v)", len(pts), err)
	}

	if _,err := NewFlight(atSecs(0, 10)).ComputeXY(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no positions: expected ErrInvalidInput, got %v", err)
	}
}
