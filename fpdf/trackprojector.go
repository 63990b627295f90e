package fpdf

import(
	"time"

	"github.com/skypies/traffic"
)

// A TrackProjector maps position reports into a 2D coordinate space for one of the views.
type TrackProjector interface {
	Setup(*traffic.Flight) error
	Project(traffic.PositionReport) (x, y float64, ok bool)
	Description() string
}

// {{{ PlanView

// PlanView is the view from above; x,y in km on a conformal projection.
type PlanView struct {
	traffic.Projection // if nil, Setup fits one to the flight
}
func (p *PlanView)Description() string { return "Plan view (km)" }

func (p *PlanView)Setup(f *traffic.Flight) error {
	if p.Projection != nil { return nil }
	proj,err := traffic.AutoProjection(f)
	if err != nil { return err }
	p.Projection = proj
	return nil
}

func (p *PlanView)Project(r traffic.PositionReport) (float64, float64, bool) {
	if !r.HasPosition() { return 0,0,false }
	x,y := p.Projection.Project(r.Long, r.Lat)
	return x/1000.0, y/1000.0, true
}

// }}}
// {{{ SideView

// SideView plots altitude against minutes since the start of the flight.
type SideView struct {
	start time.Time
}
func (p *SideView)Description() string { return "Side view (altitude by minute)" }

func (p *SideView)Setup(f *traffic.Flight) error {
	if f.Len() == 0 { return traffic.ErrInvalidInput }
	p.start = f.Start()
	return nil
}

func (p *SideView)Project(r traffic.PositionReport) (float64, float64, bool) {
	alt,ok := r.Numeric(traffic.ColAltitude)
	if !ok { return 0,0,false }
	return r.Timestamp.Sub(p.start).Minutes(), alt, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
