package traffic

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
)

// The canonical column names; anything else lives in PositionReport.Extra
const(
	ColTimestamp = "timestamp"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColAltitude  = "altitude"
	ColIcao24    = "icao24"
	ColCallsign  = "callsign"
)

// PositionReport locates an aircraft in space and time. The known geodetic/temporal fields
// are struct fields; any other columns from the input are kept in Extra, untyped.
type PositionReport struct {
	Timestamp time.Time // Always in UTC

	geo.Latlong         // Embedded type, so we can call all the geo stuff directly. NaN if absent.

	Altitude  float64   // Feet, as reported
	IcaoId    adsb.IcaoId
	Callsign  string

	Extra     map[string]interface{} // Preserved, not type-checked
}

func NoPosition() geo.Latlong { return geo.Latlong{Lat:math.NaN(), Long:math.NaN()} }

func (r PositionReport)HasPosition() bool {
	return !math.IsNaN(r.Lat) && !math.IsNaN(r.Long)
}

func (r PositionReport)String() string {
	pos := "(no position)"
	if r.HasPosition() { pos = fmt.Sprintf("(%.5f,%.5f)", r.Lat, r.Long) }
	return fmt.Sprintf("[%s] %s/%s %s %.0fft", r.Timestamp.Format(InstantFormat), r.IcaoId,
		r.Callsign, pos, r.Altitude)
}

// Clone makes a copy that shares nothing with the original.
func (r PositionReport)Clone() PositionReport {
	if r.Extra != nil {
		extra := make(map[string]interface{}, len(r.Extra))
		for k,v := range r.Extra { extra[k] = v }
		r.Extra = extra
	}
	return r
}

// With returns a copy of the report, with an extra column set.
func (r PositionReport)With(name string, val interface{}) PositionReport {
	c := r.Clone()
	if c.Extra == nil { c.Extra = map[string]interface{}{} }
	c.Extra[name] = val
	return c
}

// Field looks up a column by name. Missing coordinates come back as nil.
func (r PositionReport)Field(name string) (interface{}, bool) {
	switch name {
	case ColTimestamp: return r.Timestamp, true
	case ColLatitude:
		if math.IsNaN(r.Lat) { return nil, true }
		return r.Lat, true
	case ColLongitude:
		if math.IsNaN(r.Long) { return nil, true }
		return r.Long, true
	case ColAltitude:
		if math.IsNaN(r.Altitude) { return nil, true }
		return r.Altitude, true
	case ColIcao24:    return string(r.IcaoId), true
	case ColCallsign:  return r.Callsign, true
	}
	v,exists := r.Extra[name]
	return v,exists
}

// Numeric returns a column as a float64, if it is numeric. Timestamps are in epoch millis.
func (r PositionReport)Numeric(name string) (float64, bool) {
	if name == ColTimestamp {
		return float64(r.Timestamp.UnixNano()) / 1e6, true
	}
	v,exists := r.Field(name)
	if !exists || v == nil { return 0, false }
	f,ok := toFloat64(v)
	if ok && math.IsNaN(f) { return 0, false }
	return f,ok
}

func toFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64: return x, true
	case float32: return float64(x), true
	case int:     return float64(x), true
	case int8:    return float64(x), true
	case int16:   return float64(x), true
	case int32:   return float64(x), true
	case int64:   return float64(x), true
	case uint:    return float64(x), true
	case uint8:   return float64(x), true
	case uint16:  return float64(x), true
	case uint32:  return float64(x), true
	case uint64:  return float64(x), true
	}
	return 0, false
}

// Extra columns whose values are angles, and so need to interpolate around the circle.
func isHeadingColumn(name string) bool {
	switch strings.ToLower(name) {
	case "heading", "track", "true_track", "bearing":
		return true
	}
	return false
}

// InterpolateTo builds the report that lies a fraction `ratio` of the way from `from` towards
// `to`, stamped at time t. Numeric columns interpolate linearly; everything else is taken from
// whichever of the two reports is nearest.
func (from PositionReport)InterpolateTo(to PositionReport, ratio float64, t time.Time) PositionReport {
	// Land exactly on the sample points, rather than a rounding error away
	if ratio == 0 || ratio == 1 {
		ret := from.Clone()
		if ratio == 1 { ret = to.Clone() }
		ret.Timestamp = t
		return ret
	}

	nearest := from
	if ratio >= 0.5 { nearest = to }

	out := PositionReport{
		Timestamp: t,
		Latlong: NoPosition(),
		Altitude: interpolateFloat64(from.Altitude, to.Altitude, ratio),
		IcaoId: nearest.IcaoId,
		Callsign: nearest.Callsign,
	}
	if from.HasPosition() && to.HasPosition() {
		out.Latlong = from.Latlong.InterpolateTo(to.Latlong, ratio)
	}

	if len(from.Extra) == 0 && len(to.Extra) == 0 {
		return out
	}

	out.Extra = map[string]interface{}{}
	for k,v := range nearest.Extra {
		out.Extra[k] = v
	}
	for k,a := range from.Extra {
		b,exists := to.Extra[k]
		if !exists { continue }
		fa,okA := toFloat64(a)
		fb,okB := toFloat64(b)
		if !okA || !okB { continue }
		if isHeadingColumn(k) {
			out.Extra[k] = geo.InterpolateHeading(fa, fb, ratio)
		} else {
			out.Extra[k] = interpolateFloat64(fa, fb, ratio)
		}
	}
	return out
}

func interpolateFloat64(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}
