package traffic

import(
	"time"
)

// Ticks returns the instants in [start,stop] that are whole multiples of interval since the
// unix epoch. So with a one minute interval, ticks land on :00 seconds regardless of start.
func Ticks(start, stop time.Time, interval time.Duration) []time.Time {
	ret := []time.Time{}
	if interval <= 0 || stop.Before(start) { return ret }

	iv := int64(interval)
	ns := start.UnixNano()
	mod := ns % iv
	if mod < 0 { mod += iv }
	first := ns - mod
	if mod != 0 { first += iv }

	for t := time.Unix(0, first).UTC(); !t.After(stop); t = t.Add(interval) {
		ret = append(ret, t)
	}
	return ret
}

// countTicks splits [start,stop] into n equal steps, returning n+1 instants that begin exactly
// at start and end exactly at stop.
func countTicks(start, stop time.Time, n int) []time.Time {
	d := stop.Sub(start)
	ret := make([]time.Time, 0, n+1)
	for i:=0; i<n; i++ {
		off := time.Duration(float64(d) * float64(i) / float64(n))
		ret = append(ret, start.Add(off))
	}
	return append(ret, stop)
}

// Resample builds a new flight with a report at every interval-aligned tick inside the flight's
// time range, interpolating between the two reports that bracket each tick.
func (f *Flight)Resample(interval time.Duration) (*Flight, error) {
	if interval <= 0 {
		return nil, invalidInput("Resample", "interval %s must be positive", interval)
	}
	samples,err := f.resampleable("Resample")
	if err != nil { return nil, err }
	ticks := Ticks(samples[0].Timestamp, samples[len(samples)-1].Timestamp, interval)
	return &Flight{reports: interpolateAt(samples, ticks)}, nil
}

// ResampleCount divides the flight's duration into n equal steps, yielding n+1 reports (the
// first and last at the flight's start and stop).
func (f *Flight)ResampleCount(n int) (*Flight, error) {
	if n <= 0 {
		return nil, invalidInput("ResampleCount", "count %d must be positive", n)
	}
	samples,err := f.resampleable("ResampleCount")
	if err != nil { return nil, err }
	ticks := countTicks(samples[0].Timestamp, samples[len(samples)-1].Timestamp, n)
	return &Flight{reports: interpolateAt(samples, ticks)}, nil
}

func (f *Flight)resampleable(op string) (Table, error) {
	if f.Len() < 2 {
		return nil, invalidInput(op, "need at least two reports, have %d", f.Len())
	}
	samples := f.reports.Sorted()
	if !samples[len(samples)-1].Timestamp.After(samples[0].Timestamp) {
		return nil, invalidInput(op, "flight has zero duration")
	}
	return samples,nil
}

// interpolateAt makes one pass over the samples, which must be sorted and at least two long.
// Ticks must be ascending; any outside the samples' time range are dropped, as are repeats.
func interpolateAt(samples Table, ticks []time.Time) Table {
	ret := Table{}
	first,last := samples[0].Timestamp, samples[len(samples)-1].Timestamp

	i := 0
	for _,t := range ticks {
		if t.Before(first) || t.After(last) { continue }
		if len(ret) > 0 && !t.After(ret[len(ret)-1].Timestamp) { continue }

		// Keep the last pair as the bracket for the tail, hence len-1
		for i+1 < len(samples)-1 && !samples[i+1].Timestamp.After(t) {
			i++
		}
		a,b := samples[i], samples[i+1]

		ratio := 0.0
		if span := b.Timestamp.Sub(a.Timestamp); span > 0 {
			ratio = float64(t.Sub(a.Timestamp)) / float64(span)
		}
		ret = append(ret, a.InterpolateTo(b, ratio, t))
	}
	return ret
}
