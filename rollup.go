package traffic

import(
	geojson "github.com/paulmach/go.geojson"
)

// A RollupValue says how to boil a flight down to one property value. It is one of
// FieldAccessor, Closure or Aggregation.
type RollupValue interface {
	rollupValue()
}

// A FieldAccessor names a well known property of the flight (start, stop, duration, callsign,
// icao24, length/count, idspec, carrier, min_altitude, max_altitude), or else a column, whose
// earliest non-nil value is used.
type FieldAccessor string

// A Closure computes the value from the flight directly.
type Closure func(*Flight) interface{}

// An Aggregation reduces one column.
type Aggregation struct {
	Column string
	Op
}

func (FieldAccessor)rollupValue() {}
func (Closure)rollupValue() {}
func (Aggregation)rollupValue() {}

type RollupSpec map[string]RollupValue

// DefaultRollup is what the command line puts on each GeoJSON feature.
var DefaultRollup = RollupSpec{
	"icao24":   FieldAccessor("icao24"),
	"callsign": FieldAccessor("callsign"),
	"start":    FieldAccessor("start"),
	"stop":     FieldAccessor("stop"),
	"count":    FieldAccessor("count"),
	"idspec":   FieldAccessor("idspec"),
}

// Rollup evaluates each entry of the spec against the flight. Anything that can't be worked out
// (an unknown column, an aggregation over nothing) comes back as nil rather than an error.
func (f *Flight)Rollup(spec RollupSpec) map[string]interface{} {
	ret := map[string]interface{}{}
	for k,rv := range spec {
		ret[k] = f.rollupOne(rv)
	}
	return ret
}

func (f *Flight)rollupOne(rv RollupValue) interface{} {
	switch v := rv.(type) {
	case FieldAccessor:
		return f.accessor(string(v))
	case Closure:
		if v == nil { return nil }
		return v(f)
	case Aggregation:
		val,err := f.reports.Aggregate(v.Column, v.Op)
		if err != nil { return nil }
		return val
	}
	return nil
}

// Timestamps come out in the fixed instant format, so they survive a trip through JSON.
func (f *Flight)accessor(name string) interface{} {
	if f.Len() == 0 { return nil }

	switch name {
	case "start":    return f.Start().Format(InstantFormat)
	case "stop":     return f.Stop().Format(InstantFormat)
	case "duration": return f.Duration().Seconds()
	case "callsign": return f.Callsign()
	case "icao24":   return string(f.IcaoId())
	case "length", "count": return f.Len()
	case "idspec":   return f.IdSpec().String()
	case "carrier":
		if c := f.Carrier(); c != "" { return c }
		return nil
	case "min_altitude":
		v,err := f.reports.Aggregate(ColAltitude, OpMin)
		if err != nil { return nil }
		return v
	case "max_altitude":
		v,err := f.reports.Aggregate(ColAltitude, OpMax)
		if err != nil { return nil }
		return v
	}

	for _,r := range f.reports.Sorted() {
		if v,_ := r.Field(name); v != nil { return v }
	}
	return nil
}

// Feature is the flight as a GeoJSON LineString (over the reports that have a position), with
// the rollup as its properties. Nil if there is nothing to draw.
func (f *Flight)Feature(spec RollupSpec) *geojson.Feature {
	line := f.lineString()
	if len(line) == 0 { return nil }

	coords := make([][]float64, len(line))
	for i,pt := range line {
		coords[i] = []float64{pt[0], pt[1]}
	}
	feat := geojson.NewLineStringFeature(coords)
	for k,v := range f.Rollup(spec) {
		feat.SetProperty(k, v)
	}
	return feat
}
