package traffic

// go test -v github.com/skypies/traffic

import(
	"testing"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
)

var(
	// f1: a contiguous real track, out of order, with a 20 minute gap before the last two rows
	f1 = []byte(`[
{"timestamp":"2016-01-01 21:36:11","latitude":37.22815,"longitude":-122.06073,"altitude":19125,"icao24":"A12345","callsign":"UAL100","groundspeed":434,"heading":134},
{"timestamp":"2016-01-01 21:36:08","latitude":37.23262,"longitude":-122.06646,"altitude":19025,"icao24":"A12345","callsign":"UAL100","groundspeed":433,"heading":134},
{"timestamp":"2016-01-01 21:36:12","latitude":37.22617,"longitude":-122.05822,"altitude":19175,"icao24":"A12345","callsign":"UAL100","groundspeed":434,"heading":134},
{"timestamp":"2016-01-01 21:36:14","latitude":37.22363,"longitude":-122.05500,"altitude":19250,"icao24":"A12345","callsign":"UAL100","groundspeed":434,"heading":134},
{"timestamp":"2016-01-01 21:56:16","latitude":37.22026,"longitude":-122.05068,"altitude":19325,"icao24":"A12345","callsign":"UAL100","groundspeed":434,"heading":134},
{"timestamp":"2016-01-01 21:56:17","latitude":37.21967,"longitude":-122.04992,"altitude":19350,"icao24":"A12345","callsign":"UAL100","groundspeed":435,"heading":134}]`)

	// f2: same data in column form, with epoch millis
	f2 = []byte(`{
"timestamp": [1451684168000, 1451684171000, 1451684172000],
"latitude":  [37.23262, 37.22815, null],
"longitude": [-122.06646, -122.06073, null],
"altitude":  [19025, 19125, 19175],
"icao24":    ["A12345", "A12345", "A12345"],
"callsign":  ["UAL100", "UAL100", "UAL100"]}`)

	// tr1: two aircraft, interleaved; B has two segments
	tr1 = []byte(`[
{"timestamp":"2016-01-01 10:00:00","latitude":37.0,"longitude":-122.0,"altitude":5000,"icao24":"AAAAAA","callsign":"SWA1"},
{"timestamp":"2016-01-01 10:00:00","latitude":38.0,"longitude":-121.0,"altitude":9000,"icao24":"BBBBBB","callsign":"N12345"},
{"timestamp":"2016-01-01 10:01:00","latitude":37.1,"longitude":-122.1,"altitude":5500,"icao24":"AAAAAA","callsign":"SWA1"},
{"timestamp":"2016-01-01 10:01:00","latitude":38.1,"longitude":-121.1,"altitude":9500,"icao24":"BBBBBB","callsign":"N12345"},
{"timestamp":"2016-01-01 11:00:00","latitude":38.2,"longitude":-121.2,"altitude":1000,"icao24":"BBBBBB","callsign":"N12345"},
{"timestamp":"2016-01-01 11:01:00","latitude":38.3,"longitude":-121.3,"altitude":500,"icao24":"BBBBBB","callsign":"N12345"},
{"timestamp":"2016-01-01 10:02:00","latitude":37.2,"longitude":-122.2,"altitude":6000,"icao24":"AAAAAA","callsign":"SWA1"}]`)
)

func mustTable(t *testing.T, blob []byte) Table {
	t.Helper()
	tbl,err := TableFromBytes(blob)
	if err != nil { t.Fatalf("TableFromBytes: %v", err) }
	return tbl
}

func mustFlight(t *testing.T, blob []byte) *Flight {
	return NewFlight(mustTable(t, blob))
}

// base is an arbitrary minute-aligned instant
var base = time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)

// rep builds a report `secs` after base
func rep(secs float64, lat, long, alt float64) PositionReport {
	return PositionReport{
		Timestamp: base.Add(time.Duration(secs * float64(time.Second))),
		Latlong: geo.Latlong{Lat:lat, Long:long},
		Altitude: alt,
		IcaoId: adsb.IcaoId("ABCDEF"),
		Callsign: "SKW750",
	}
}

// atSecs builds reports with no position, at the given offsets from base
func atSecs(secs ...float64) Table {
	t := Table{}
	for _,s := range secs {
		r := rep(s, 0, 0, 1000)
		r.Latlong = NoPosition()
		t = append(t, r)
	}
	return t
}

func timestamps(t Table) []time.Time {
	ret := []time.Time{}
	for _,r := range t { ret = append(ret, r.Timestamp) }
	return ret
}
