package traffic

import(
	"fmt"
	"time"

	"github.com/skypies/adsb"
)

// A Flight is a run of position reports that we believe belong to a single aircraft track.
// Nothing enforces that the reports share an IcaoId. Flights are immutable; every operation
// that would change one returns a new Flight.
type Flight struct {
	reports Table // private copy; never handed out
}

// NewFlight takes a copy of the table, so later changes to it don't leak in.
func NewFlight(t Table) *Flight {
	return &Flight{reports: t.Copy()}
}

func (f *Flight)Len() int { return len(f.reports) }

// Reports returns a copy of the flight's data, in the order the flight holds it.
func (f *Flight)Reports() Table { return f.reports.Copy() }

func (f *Flight)Start() time.Time { s,_ := f.reports.TimeRange(); return s }
func (f *Flight)Stop() time.Time  { _,e := f.reports.TimeRange(); return e }
func (f *Flight)Duration() time.Duration {
	s,e := f.reports.TimeRange()
	return e.Sub(s)
}

// Callsign and IcaoId are the (lexicographic) maximum values seen; blank if there are none.
func (f *Flight)Callsign() string {
	if v,err := f.reports.Aggregate(ColCallsign, OpMax); err == nil {
		return v.(string)
	}
	return ""
}
func (f *Flight)IcaoId() adsb.IcaoId {
	if v,err := f.reports.Aggregate(ColIcao24, OpMax); err == nil {
		return adsb.IcaoId(v.(string))
	}
	return ""
}

// At is the most recent report. The bool is false for an empty flight.
func (f *Flight)At() (PositionReport, bool) {
	if len(f.reports) == 0 { return PositionReport{}, false }
	i := 0
	for j,r := range f.reports {
		if !r.Timestamp.Before(f.reports[i].Timestamp) { i = j }
	}
	return f.reports[i].Clone(), true
}

func (f *Flight)Aggregate(column string, op Op) (interface{}, error) {
	return f.reports.Aggregate(column, op)
}
func (f *Flight)Min(column string) (interface{}, error) { return f.Aggregate(column, OpMin) }
func (f *Flight)Max(column string) (interface{}, error) { return f.Aggregate(column, OpMax) }
func (f *Flight)Mean(column string) (float64, error)    { return f.aggregateFloat(column, OpMean) }
func (f *Flight)Median(column string) (float64, error)  { return f.aggregateFloat(column, OpMedian) }
func (f *Flight)Stdev(column string) (float64, error)   { return f.aggregateFloat(column, OpStdev) }

func (f *Flight)aggregateFloat(column string, op Op) (float64, error) {
	v,err := f.reports.Aggregate(column, op)
	if err != nil { return 0, err }
	return v.(float64), nil
}

func (f *Flight)String() string {
	if f.Len() == 0 { return "Flight{empty}" }
	return fmt.Sprintf("Flight{%s/%s, %s +%s, %d reports}", f.IcaoId(), f.Callsign(),
		f.Start().Format(InstantFormat), f.Duration(), f.Len())
}

func (f *Flight)Filter(keep func(PositionReport) bool) *Flight {
	return &Flight{reports: f.reports.Filter(keep)}
}

// {{{ Before, After, Between

// Before keeps the reports strictly before t (or at-or-before, if strict is false).
func (f *Flight)Before(t time.Time, strict bool) *Flight {
	return f.Filter(func(r PositionReport) bool {
		if strict { return r.Timestamp.Before(t) }
		return !r.Timestamp.After(t)
	})
}

// After keeps the reports strictly after t (or at-or-after, if strict is false).
func (f *Flight)After(t time.Time, strict bool) *Flight {
	return f.Filter(func(r PositionReport) bool {
		if strict { return r.Timestamp.After(t) }
		return !r.Timestamp.Before(t)
	})
}

// BeforeTime and AfterTime carry the defaults that segmentation relies on: a report exactly at
// t goes to the After side.
func (f *Flight)BeforeTime(t time.Time) *Flight { return f.Before(t, true) }
func (f *Flight)AfterTime(t time.Time) *Flight  { return f.After(t, false) }

// Between keeps reports in [t1,t2).
func (f *Flight)Between(t1, t2 time.Time) *Flight {
	return f.AfterTime(t1).BeforeTime(t2)
}

func (f *Flight)BeforeString(s string) (*Flight, error) {
	t,err := MakeInstant(s, Strict)
	if err != nil { return nil, err }
	return f.BeforeTime(t), nil
}
func (f *Flight)AfterString(s string) (*Flight, error) {
	t,err := MakeInstant(s, Strict)
	if err != nil { return nil, err }
	return f.AfterTime(t), nil
}
func (f *Flight)BetweenString(s1, s2 string) (*Flight, error) {
	t1,err := MakeInstant(s1, Strict)
	if err != nil { return nil, err }
	t2,err := MakeInstant(s2, Strict)
	if err != nil { return nil, err }
	return f.Between(t1,t2), nil
}

// }}}

// Merge combines two flights into one, in time order.
func (f *Flight)Merge(f2 *Flight) *Flight {
	return &Flight{reports: f.reports.Merge(f2.reports)}
}

// TrimToTimes keeps the reports in [s,e], inclusive at both ends.
func (f *Flight)TrimToTimes(s,e time.Time) *Flight {
	return &Flight{reports: f.reports.Sorted().TrimToTimes(s,e)}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
