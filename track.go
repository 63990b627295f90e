package traffic

import(
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skypies/geo"
)

// A Table is an ordered run of PositionReports; the thing that Flights and Traffic wrap.
// Methods never modify the receiver: anything that reorders or subsets returns a new Table.
type Table []PositionReport

type byTimestampAscending Table
func (a byTimestampAscending) Len() int           { return len(a) }
func (a byTimestampAscending) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTimestampAscending) Less(i, j int) bool {
	return a[i].Timestamp.Before(a[j].Timestamp)
}

// A Group is the set of rows sharing a key, as produced by GroupBy
type Group struct {
	Key  string
	Rows Table
}

func (t Table)Len() int { return len(t) }

func (t Table)String() string {
	if len(t) == 0 { return "Table: 0 rows" }
	s,e := t.TimeRange()
	return fmt.Sprintf("Table: %d rows, %s -> %s (%s)", len(t), s.Format(InstantFormat),
		e.Format(InstantFormat), e.Sub(s))
}

// Copy returns a deep copy of the table.
func (t Table)Copy() Table {
	ret := make(Table, len(t))
	for i,r := range t { ret[i] = r.Clone() }
	return ret
}

func (t Table)IsSorted() bool { return sort.IsSorted(byTimestampAscending(t)) }

// Sorted returns a (deep) copy of the table in timestamp order. Equal timestamps keep their
// relative order.
func (t Table)Sorted() Table {
	ret := t.Copy()
	sort.Stable(byTimestampAscending(ret))
	return ret
}

// TimeRange is the earliest and latest timestamp, regardless of row order.
func (t Table)TimeRange() (s,e time.Time) {
	for i,r := range t {
		if i == 0 || r.Timestamp.Before(s) { s = r.Timestamp }
		if i == 0 || r.Timestamp.After(e)  { e = r.Timestamp }
	}
	return
}

func (t Table)Filter(keep func(PositionReport) bool) Table {
	ret := Table{}
	for _,r := range t {
		if keep(r) { ret = append(ret, r.Clone()) }
	}
	return ret
}

// GroupBy partitions the rows by key. Groups come back in the order their key was first seen;
// rows within a group keep their table order.
func (t Table)GroupBy(key func(PositionReport) string) []Group {
	idx := map[string]int{}
	groups := []Group{}
	for _,r := range t {
		k := key(r)
		i,exists := idx[k]
		if !exists {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key:k})
		}
		groups[i].Rows = append(groups[i].Rows, r.Clone())
	}
	return groups
}

// OrderBy sorts on any column (stable). Rows missing the column go last. A leading '-' on the
// column name reverses the order.
func (t Table)OrderBy(column string) Table {
	desc := strings.HasPrefix(column, "-")
	column = strings.TrimPrefix(column, "-")

	ret := t.Copy()
	sort.SliceStable(ret, func(i, j int) bool {
		a,_ := ret[i].Field(column)
		b,_ := ret[j].Field(column)
		if a == nil || b == nil { return a != nil && b == nil }
		if desc { return compareValues(b,a) < 0 }
		return compareValues(a,b) < 0
	})
	return ret
}

// Derive returns a copy of the table with a new (or replaced) extra column.
func (t Table)Derive(column string, fn func(PositionReport) interface{}) Table {
	ret := make(Table, len(t))
	for i,r := range t {
		ret[i] = r.With(column, fn(r))
	}
	return ret
}

// Column extracts the values of one column, in row order.
func (t Table)Column(name string) []interface{} {
	ret := make([]interface{}, 0, len(t))
	for _,r := range t {
		v,_ := r.Field(name)
		ret = append(ret, v)
	}
	return ret
}

// Merge returns the union of two tables, in time order
func (t Table)Merge(t2 Table) Table {
	ret := append(t.Copy(), t2.Copy()...)
	sort.Stable(byTimestampAscending(ret))
	return ret
}

// Returns a (possibly empty) subtable of rows within [s,e] (inclusive).
// If padding is non-zero, we include that many additional rows just to
// either side of the [s,e] (i.e neighboring rows that don't quite lie in the range).
// Assumes the table is sorted.
func (t Table)TrimToTimes(s,e time.Time) Table { return t.PaddedTrimToTimes(s,e,0) }
func (t Table)PaddedTrimToTimes(s,e time.Time, n int) Table {
	i,j := -1,-1
	for k,r := range t {
		if !r.Timestamp.Before(s) && !r.Timestamp.After(e) {
			if i < 0 { i = k }
			j = k
		}
	}
	if i < 0 { return Table{} }

	i -= n
	j += n
	if i < 0 { i = 0 }
	if j > len(t)-1 { j = len(t)-1 }
	return t[i:j+1].Copy()
}

// Positioned returns the rows that have a lat/long
func (t Table)Positioned() Table {
	return t.Filter(func(r PositionReport) bool { return r.HasPosition() })
}

// BoundingBox is the box around all the positioned rows; false if there aren't any.
func (t Table)BoundingBox() (geo.LatlongBox, bool) {
	var box geo.LatlongBox
	found := false
	for _,r := range t {
		if !r.HasPosition() { continue }
		if !found {
			box = r.BoxTo(r.Latlong)
			found = true
		} else {
			box.Enclose(r.Latlong)
		}
	}
	return box, found
}

// compareValues orders the kinds of values that show up in columns; numbers, strings,
// times and bools. Mismatched kinds compare by their printed form.
func compareValues(a, b interface{}) int {
	if fa,ok := toFloat64(a); ok {
		if fb,ok := toFloat64(b); ok {
			switch {
			case fa < fb: return -1
			case fa > fb: return 1
			default:      return 0
			}
		}
	}
	switch x := a.(type) {
	case time.Time:
		if y,ok := b.(time.Time); ok {
			switch {
			case x.Before(y): return -1
			case x.After(y):  return 1
			default:          return 0
			}
		}
	case string:
		if y,ok := b.(string); ok {
			return strings.Compare(x,y)
		}
	case bool:
		if y,ok := b.(bool); ok {
			switch {
			case x == y: return 0
			case !x:     return -1
			default:     return 1
			}
		}
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}
