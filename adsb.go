package traffic

import(
	"sort"
	"strings"

	"github.com/skypies/adsb"
)

// ReportFromADSB converts one decoded ADS-B composite message. A zero position (the message
// never had one) becomes a missing position.
func ReportFromADSB(m *adsb.CompositeMsg) PositionReport {
	r := PositionReport{
		Timestamp: m.GeneratedTimestampUTC.UTC(),
		Latlong: m.Position,
		Altitude: float64(m.Altitude),
		IcaoId: m.Icao24,
		Callsign: strings.TrimSpace(m.Callsign),
		Extra: map[string]interface{}{
			"groundspeed": float64(m.GroundSpeed),
			"track": float64(m.Track),
			"vertical_rate": float64(m.VerticalRate),
		},
	}
	if r.Lat == 0 && r.Long == 0 {
		r.Latlong = NoPosition()
	}
	if m.Squawk != "" { r.Extra["squawk"] = m.Squawk }
	if m.ReceiverName != "" { r.Extra["receiver"] = m.ReceiverName }
	return r
}

// ReportsFromADSB converts a batch of messages, which may be for many aircraft, into a table in
// time order. The messages themselves are sorted in place.
func ReportsFromADSB(msgs []*adsb.CompositeMsg) Table {
	sort.Sort(adsb.CompositeMsgPtrByTimeAsc(msgs))
	t := make(Table, 0, len(msgs))
	for _,m := range msgs {
		t = append(t, ReportFromADSB(m))
	}
	return t
}
