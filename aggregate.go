package traffic

import(
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// An Op reduces one column of a Table to a single value.
type Op int
const(
	OpMin Op = iota
	OpMax
	OpMean
	OpMedian
	OpStdev // sample standard deviation
	OpSum
	OpCount // non-nil values
	OpFirst
	OpLast
)

func (op Op)String() string {
	switch op {
	case OpMin:    return "min"
	case OpMax:    return "max"
	case OpMean:   return "mean"
	case OpMedian: return "median"
	case OpStdev:  return "stdev"
	case OpSum:    return "sum"
	case OpCount:  return "count"
	case OpFirst:  return "first"
	case OpLast:   return "last"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ParseOp maps an op name (as used in rollup specs and the command line) back to an Op.
func ParseOp(s string) (Op, error) {
	for op := OpMin; op <= OpLast; op++ {
		if op.String() == s { return op, nil }
	}
	return 0, invalidInput("ParseOp", "unknown aggregation %q", s)
}

// Aggregate reduces a column. Nil values (and NaNs) are skipped. Min and max work over numbers,
// strings and timestamps; the other statistical ops need numbers. An empty column is an error
// for every op except count.
func (t Table)Aggregate(column string, op Op) (interface{}, error) {
	vals := []interface{}{}
	nums := []float64{}
	allNumeric := true
	for _,r := range t {
		v,_ := r.Field(column)
		if v == nil { continue }
		if f,ok := toFloat64(v); ok {
			if f != f { continue } // NaN
			nums = append(nums, f)
		} else {
			allNumeric = false
		}
		vals = append(vals, v)
	}

	if op == OpCount { return len(vals), nil }
	if len(vals) == 0 {
		return nil, invalidInput("Aggregate", "%s(%s): no values", op, column)
	}

	switch op {
	case OpFirst: return vals[0], nil
	case OpLast:  return vals[len(vals)-1], nil

	case OpMin, OpMax:
		if allNumeric {
			if op == OpMin { return floats.Min(nums), nil }
			return floats.Max(nums), nil
		}
		best := vals[0]
		for _,v := range vals[1:] {
			c := compareValues(v, best)
			if (op == OpMin && c < 0) || (op == OpMax && c > 0) { best = v }
		}
		return best, nil
	}

	if !allNumeric {
		return nil, invalidInput("Aggregate", "%s(%s): column is not numeric", op, column)
	}

	switch op {
	case OpMean:
		return stat.Mean(nums, nil), nil
	case OpSum:
		return floats.Sum(nums), nil
	case OpStdev:
		if len(nums) < 2 {
			return nil, invalidInput("Aggregate", "%s(%s): need two values", op, column)
		}
		return stat.StdDev(nums, nil), nil
	case OpMedian:
		return median(nums), nil
	}

	return nil, invalidInput("Aggregate", "unknown op %s", op)
}

// The empirical quantile picks the lower of the two middle values; we want their average.
func median(x []float64) float64 {
	s := append([]float64{}, x...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, s, nil)
	}
	return (s[n/2-1] + s[n/2]) / 2
}
