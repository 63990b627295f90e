package traffic

import(
	"fmt"
	"sort"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/skypies/adsb"
)

// Traffic is a bag of position reports from any number of aircraft, in no particular order.
// Like a Flight it is immutable. The only way to get Flights out is to iterate.
type Traffic struct {
	reports Table
}

func NewTraffic(t Table) *Traffic { return &Traffic{reports: t.Copy()} }

func (tr *Traffic)Len() int { return len(tr.reports) }
func (tr *Traffic)Reports() Table { return tr.reports.Copy() }
func (tr *Traffic)Start() time.Time { s,_ := tr.reports.TimeRange(); return s }
func (tr *Traffic)Stop() time.Time  { _,e := tr.reports.TimeRange(); return e }

func (tr *Traffic)String() string {
	return fmt.Sprintf("Traffic{%d reports, %d aircraft}", tr.Len(), len(tr.Aircraft()))
}

func (tr *Traffic)Filter(keep func(PositionReport) bool) *Traffic {
	return &Traffic{reports: tr.reports.Filter(keep)}
}

// Merge concatenates two bags of reports.
func (tr *Traffic)Merge(tr2 *Traffic) *Traffic {
	return &Traffic{reports: append(tr.reports.Copy(), tr2.reports.Copy()...)}
}

func byIcaoId(r PositionReport) string { return string(r.IcaoId) }

// Aircraft lists the distinct IcaoIds, in the order they first appear.
func (tr *Traffic)Aircraft() []adsb.IcaoId {
	seen := map[adsb.IcaoId]bool{}
	ret := []adsb.IcaoId{}
	for _,r := range tr.reports {
		if !seen[r.IcaoId] {
			seen[r.IcaoId] = true
			ret = append(ret, r.IcaoId)
		}
	}
	return ret
}

// Callsigns lists the distinct non-blank callsigns, sorted.
func (tr *Traffic)Callsigns() []string {
	seen := map[string]bool{}
	ret := []string{}
	for _,r := range tr.reports {
		if r.Callsign != "" && !seen[r.Callsign] {
			seen[r.Callsign] = true
			ret = append(ret, r.Callsign)
		}
	}
	sort.Strings(ret)
	return ret
}

// Flight returns everything we have for one aircraft, unsegmented. Nil if there's nothing.
func (tr *Traffic)Flight(id adsb.IcaoId) *Flight {
	t := tr.reports.Filter(func(r PositionReport) bool { return r.IcaoId == id })
	if len(t) == 0 { return nil }
	return &Flight{reports: t}
}

// {{{ TrafficIterator

// A TrafficIterator yields every segment of every aircraft; all of one aircraft's segments
// (in time order) before moving on to the next aircraft. Aircraft come in the order they first
// appear in the traffic.
type TrafficIterator struct {
	groups    []Group
	gi        int
	threshold time.Duration
	segs      *SegmentIterator

	val *Flight
	err error
}

// Iterate regroups and resegments from scratch on every call.
func (tr *Traffic)Iterate(threshold time.Duration) *TrafficIterator {
	return &TrafficIterator{
		groups: tr.reports.GroupBy(byIcaoId),
		threshold: threshold,
	}
}

func (it *TrafficIterator)Iterate() bool {
	if it.err != nil { return false }
	it.val,it.err = it.nextWithErr()
	return (it.val != nil && it.err == nil)
}
func (it *TrafficIterator)Flight() *Flight { return it.val }
func (it *TrafficIterator)Err() error {
	if it.err == nil { return nil }
	return fmt.Errorf("trafficiterator: %w", it.err)
}

func (it *TrafficIterator)nextWithErr() (*Flight, error) {
	for {
		if it.segs != nil {
			if it.segs.Iterate() { return it.segs.Flight(), nil }
			if err := it.segs.Err(); err != nil { return nil, err }
			it.segs = nil
		}
		if it.gi >= len(it.groups) {
			return nil,nil // We're all done !
		}
		it.segs = (&Flight{reports: it.groups[it.gi].Rows}).Split(it.threshold)
		it.gi++
	}
}

// }}}

// Flights drains a fresh iterator.
func (tr *Traffic)Flights(threshold time.Duration) ([]*Flight, error) {
	it := tr.Iterate(threshold)
	ret := []*Flight{}
	for it.Iterate() {
		ret = append(ret, it.Flight())
	}
	return ret, it.Err()
}

// FeatureCollection holds one feature per segment; segments with no positions are skipped.
func (tr *Traffic)FeatureCollection(threshold time.Duration, spec RollupSpec) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	it := tr.Iterate(threshold)
	for it.Iterate() {
		if feat := it.Flight().Feature(spec); feat != nil {
			fc.AddFeature(feat)
		}
	}
	return fc, it.Err()
}
