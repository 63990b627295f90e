package traffic

import(
	pgeo "github.com/paulmach/go.geo"
	"github.com/paulmach/go.geo/reducers"
)

// Simplify thins the flight's path with Douglas-Peucker, on the projected plane; tolerance is
// in the projection's units (metres, for the auto projection). Surviving reports are kept
// whole. Reports with no position are dropped. A nil projection means AutoProjection.
func (f *Flight)Simplify(tolerance float64, p Projection) (*Flight, error) {
	if tolerance < 0 {
		return nil, invalidInput("Simplify", "tolerance %f must not be negative", tolerance)
	}

	pts,err := f.Projected(p)
	if err != nil { return nil, err }
	if len(pts) < 3 {
		out := make(Table, len(pts))
		for i,pt := range pts { out[i] = pt.PositionReport }
		return &Flight{reports: out}, nil
	}

	path := pgeo.NewPath()
	for _,pt := range pts {
		path.Push(pgeo.NewPoint(pt.X, pt.Y))
	}
	_,indexMap := reducers.DouglasPeuckerIndexMap(path, tolerance)

	out := make(Table, 0, len(indexMap))
	for _,i := range indexMap {
		out = append(out, pts[i].PositionReport)
	}
	return &Flight{reports: out}, nil
}
