package traffic

import(
	"encoding/json"
	"math"
	"strings"
	"time"
)

// The fixed textual pattern for timestamps; always read as UTC
const InstantFormat = "2006-01-02 15:04:05"

type ParseMode int
const(
	// Strict returns an InvalidInputError for anything we can't parse.
	Strict ParseMode = iota

	// Lenient silently substitutes the current wall-clock time for an unparseable value. Bad
	// rows end up stamped "now", and sort to the end of everything; only for interactive use.
	Lenient
)

func (m ParseMode)String() string {
	switch m {
	case Strict:  return "strict"
	case Lenient: return "lenient"
	default:      return "?"
	}
}

// MakeInstant turns something timestamp-shaped into a UTC time.Time. Numbers are taken to be
// milliseconds since the unix epoch, which is how the JSON dumps encode them.
func MakeInstant(v interface{}, mode ParseMode) (time.Time, error) {
	t,err := makeInstant(v)
	if err != nil && mode == Lenient {
		return time.Now().UTC(), nil
	}
	return t,err
}

// MustInstant is MakeInstant in Lenient mode; for tests & the command line.
func MustInstant(v interface{}) time.Time {
	t,_ := MakeInstant(v, Lenient)
	return t
}

func makeInstant(v interface{}) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case *time.Time:
		if x == nil { break }
		return x.UTC(), nil
	case string:
		return parseInstantString(x)
	case json.Number:
		if f,err := x.Float64(); err == nil {
			return epochMillisToTime(f)
		}
		return parseInstantString(x.String())
	case float64:
		return epochMillisToTime(x)
	case float32:
		return epochMillisToTime(float64(x))
	case int:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int64:
		return time.UnixMilli(x).UTC(), nil
	case uint64:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int8, int16, int32, uint, uint8, uint16, uint32:
		if f,ok := toFloat64(x); ok {
			return epochMillisToTime(f)
		}
	}
	return time.Time{}, invalidInput("MakeInstant", "can't make a timestamp from %T(%v)", v, v)
}

func parseInstantString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t,err := time.ParseInLocation(InstantFormat, s, time.UTC); err == nil {
		return t, nil
	}
	if t,err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, invalidInput("MakeInstant", "timestamp %q is not %q or RFC3339", s, InstantFormat)
}

func epochMillisToTime(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, invalidInput("MakeInstant", "epoch millis %v", ms)
	}
	whole := math.Floor(ms)
	nanos := int64(math.Round((ms-whole) * 1e6))
	return time.UnixMilli(int64(whole)).Add(time.Duration(nanos)).UTC(), nil
}
