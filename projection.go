package traffic

import(
	"fmt"
	"math"

	"github.com/skypies/geo"
)

// Mean earth radius, in metres
const EarthRadiusM = 6371008.8

// A Projection maps (longitude,latitude) in degrees onto a plane.
type Projection interface {
	Project(lon, lat float64) (x, y float64)
}

// ConicConformal is a spherical Lambert conformal conic projection. Output is in metres (well,
// metres times Scale/EarthRadiusM). Origin is at Center.
type ConicConformal struct {
	Center    geo.Latlong
	Rotation  float64    // degrees added to longitude before projecting
	Parallels [2]float64 // standard parallels, degrees latitude
	Scale     float64    // multiplier from the unit sphere

	n, f, rho0 float64
	mercator   bool // cone constant was ~0; the cone flattened out into a cylinder
}

const epsilon = 1e-6

func radians(d float64) float64 { return d * math.Pi / 180.0 }

// BuildProjection sets up a conic conformal projection. The usual setup is a rotation of
// -center.Long and parallels bracketing the latitudes of interest.
func BuildProjection(center geo.Latlong, rotation float64, parallels [2]float64) *ConicConformal {
	p := ConicConformal{
		Center: center,
		Rotation: rotation,
		Parallels: parallels,
		Scale: EarthRadiusM,
	}

	phi1,phi2 := radians(parallels[0]), radians(parallels[1])
	cy0 := math.Cos(phi1)
	if math.Abs(phi1-phi2) < epsilon {
		p.n = math.Sin(phi1)
	} else {
		p.n = math.Log(cy0/math.Cos(phi2)) / math.Log(tany(phi2)/tany(phi1))
	}

	if math.Abs(p.n) < epsilon || math.IsNaN(p.n) {
		p.mercator = true
		p.rho0 = math.Log(tany(clampLat(radians(center.Lat))))
		return &p
	}

	p.f = cy0 * math.Pow(tany(phi1), p.n) / p.n
	p.rho0 = p.rho(radians(center.Lat))
	return &p
}

func tany(phi float64) float64 { return math.Tan((math.Pi/2 + phi) / 2) }

func clampLat(phi float64) float64 {
	lim := math.Pi/2 - epsilon
	return math.Max(-lim, math.Min(lim, phi))
}

func (p *ConicConformal)rho(phi float64) float64 {
	phi = clampLat(phi)
	return p.f / math.Pow(tany(phi), p.n)
}

func (p *ConicConformal)Project(lon, lat float64) (x, y float64) {
	lambda := radians(lon + p.Rotation)
	lambda = math.Remainder(lambda, 2*math.Pi) // into [-pi,pi]
	phi := radians(lat)

	if p.mercator {
		x = lambda
		y = math.Log(tany(clampLat(phi))) - p.rho0
	} else {
		r := p.rho(phi)
		x = r * math.Sin(p.n*lambda)
		y = p.rho0 - r*math.Cos(p.n*lambda)
	}
	return x * p.Scale, y * p.Scale
}

func (p *ConicConformal)String() string {
	kind := "conic"
	if p.mercator { kind = "mercator" }
	return fmt.Sprintf("%s{center=(%.4f,%.4f) rot=%.4f parallels=%v scale=%.1f}", kind,
		p.Center.Lat, p.Center.Long, p.Rotation, p.Parallels, p.Scale)
}

// GreatCircleDistance is in metres.
func GreatCircleDistance(p1, p2 geo.Latlong) float64 {
	return p1.DistKM(p2) * 1000.0
}

// AutoProjection fits a projection to the flight's positioned reports; centred on their bounding
// box, with the box's edges as standard parallels, scaled so that the box's diagonal projects to
// its great circle length.
func AutoProjection(f *Flight) (*ConicConformal, error) {
	box,ok := f.reports.BoundingBox()
	if !ok {
		return nil, invalidInput("AutoProjection", "flight has no positioned reports")
	}

	center := geo.Latlong{
		Lat: (box.SW.Lat + box.NE.Lat) / 2,
		Long: (box.SW.Long + box.NE.Long) / 2,
	}
	p := BuildProjection(center, -center.Long, [2]float64{box.SW.Lat, box.NE.Lat})

	x1,y1 := p.Project(box.SW.Long, box.SW.Lat)
	x2,y2 := p.Project(box.NE.Long, box.NE.Lat)
	if projected := math.Hypot(x2-x1, y2-y1); projected > 0 {
		p.Scale *= GreatCircleDistance(box.SW, box.NE) / projected
	}
	return p, nil
}

// A ProjectedPoint is a report, plus where it lands on the plane.
type ProjectedPoint struct {
	PositionReport
	X, Y float64
}

func (f *Flight)projection(p Projection) (Projection, error) {
	if p != nil { return p, nil }
	return AutoProjection(f)
}

// Projected returns the positioned reports, in time order, with their planar coords.
// A nil projection means AutoProjection.
func (f *Flight)Projected(p Projection) ([]ProjectedPoint, error) {
	p,err := f.projection(p)
	if err != nil { return nil, err }

	ret := []ProjectedPoint{}
	for _,r := range f.reports.Sorted() {
		if !r.HasPosition() { continue }
		x,y := p.Project(r.Long, r.Lat)
		ret = append(ret, ProjectedPoint{PositionReport: r.Clone(), X:x, Y:y})
	}
	return ret, nil
}

// ComputeXY returns a new flight whose positioned reports carry "x" and "y" extra columns.
func (f *Flight)ComputeXY(p Projection) (*Flight, error) {
	p,err := f.projection(p)
	if err != nil { return nil, err }

	out := make(Table, len(f.reports))
	for i,r := range f.reports {
		if !r.HasPosition() {
			out[i] = r.Clone()
			continue
		}
		x,y := p.Project(r.Long, r.Lat)
		out[i] = r.With("x", x).With("y", y)
	}
	return &Flight{reports: out}, nil
}
