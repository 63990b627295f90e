package traffic

import(
	"math"
	"testing"
	"time"
)

func TestFieldAndNumeric(t *testing.T) {
	r := rep(0, 37.5, -122.5, 5000).With("speed", 400).With("tag", "x")

	if v,_ := r.Field(ColLatitude); v != 37.5 {
		t.Errorf("latitude: expected 37.5, got %v", v)
	}
	if v,_ := r.Field(ColIcao24); v != "ABCDEF" {
		t.Errorf("icao24: expected ABCDEF, got %v", v)
	}
	if _,exists := r.Field("nope"); exists {
		t.Errorf("expected no such column")
	}
	if f,ok := r.Numeric("speed"); !ok || f != 400 {
		t.Errorf("speed: expected 400, got %v,%v", f, ok)
	}
	if _,ok := r.Numeric("tag"); ok {
		t.Errorf("tag: expected non-numeric")
	}
	if f,_ := r.Numeric(ColTimestamp); f != float64(base.UnixMilli()) {
		t.Errorf("timestamp: expected %d, got %f", base.UnixMilli(), f)
	}

	r.Latlong = NoPosition()
	if v,_ := r.Field(ColLongitude); v != nil {
		t.Errorf("missing longitude: expected nil, got %v", v)
	}
}

func TestWithDoesNotAlias(t *testing.T) {
	r1 := rep(0, 0, 0, 0).With("a", 1.0)
	r2 := r1.With("a", 2.0)
	if r1.Extra["a"] != 1.0 || r2.Extra["a"] != 2.0 {
		t.Errorf("With modified the original: %v %v", r1.Extra, r2.Extra)
	}
}

func TestInterpolateTo(t *testing.T) {
	from := rep(0, 37.0, -122.0, 1000).With("heading", 350.0).With("speed", 100.0).With("src", "a")
	to := rep(10, 37.2, -122.2, 2000).With("heading", 10.0).With("speed", 200.0).With("src", "b")

	mid := base.Add(5 * time.Second)
	itp := from.InterpolateTo(to, 0.5, mid)

	if !itp.Timestamp.Equal(mid) {
		t.Errorf("timestamp: expected %s, got %s", mid, itp.Timestamp)
	}
	if itp.Altitude != 1500 {
		t.Errorf("altitude: expected 1500, got %f", itp.Altitude)
	}
	if math.Abs(itp.Lat - 37.1) > 0.001 || math.Abs(itp.Long + 122.1) > 0.001 {
		t.Errorf("position: expected ~(37.1,-122.1), got (%f,%f)", itp.Lat, itp.Long)
	}
	if itp.Extra["speed"] != 150.0 {
		t.Errorf("speed: expected 150, got %v", itp.Extra["speed"])
	}
	if h := itp.Extra["heading"].(float64); math.Abs(h) > 0.001 && math.Abs(h-360) > 0.001 {
		t.Errorf("heading: expected to wrap through north, got %f", h)
	}
	if itp.Extra["src"] != "b" {
		t.Errorf("non-numeric: expected the nearer value 'b', got %v", itp.Extra["src"])
	}

	// Exactly on the endpoints
	if e := from.InterpolateTo(to, 1, to.Timestamp); e.Lat != to.Lat || e.Altitude != to.Altitude {
		t.Errorf("ratio 1: expected %s, got %s", to, e)
	}

	// Missing positions stay missing
	to.Latlong = NoPosition()
	if from.InterpolateTo(to, 0.3, mid).HasPosition() {
		t.Errorf("expected no position when one side has none")
	}
}
