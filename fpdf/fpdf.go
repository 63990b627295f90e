// Provides routines to render flights as PDFs; a plan view and a side (altitude) view per page.
package fpdf

import(
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/traffic"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// {{{ var()

var(
	AltitudeGradientMin = 0.0
	AltitudeGradientMax = 40000.0

	// http://www.perbang.dk/rgbgradient/ ; first & last are under/overflow
	AltitudeGradientColors = [][]int{
		{0x00, 0xBF, 0xA9}, // 00BFA9
		{0x00, 0xC2, 0x66}, // 00C266
		{0x00, 0xC5, 0x21}, // 00C521
		{0x25, 0xC9, 0x00}, // 25C900
		{0x6F, 0xCC, 0x00}, // 6FCC00
		{0xBB, 0xD0, 0x00}, // BBD000
		{0xD3, 0x9D, 0x00}, // D39D00
		{0xD7, 0x53, 0x00}, // D75300
		{0xDA, 0x06, 0x00}, // DA0600
		{0xDE, 0x00, 0x48}, // DE0048
		{0xE1, 0x00, 0x99}, // E10099
		{0xDB, 0x00, 0xE5}, // DB00E5
	}

	RedRGB = []int{0xff, 0, 0}
)

// }}}
// {{{ altitudeToRGB

func altitudeToRGB(alt float64) []int {
	n := len(AltitudeGradientColors)
	if math.IsNaN(alt) || alt <= AltitudeGradientMin { return AltitudeGradientColors[0] }
	if alt >= AltitudeGradientMax { return AltitudeGradientColors[n-1] }

	f := (alt-AltitudeGradientMin) / (AltitudeGradientMax-AltitudeGradientMin)
	i := int(f * float64(n-2))
	return AltitudeGradientColors[i+1]
}

// }}}

// A FlightPdf lays a flight out over one landscape page: plan view on the left, side view on
// the right, caption underneath.
type FlightPdf struct {
	*gofpdf.Fpdf

	Plan  TrackProjector
	Side  TrackProjector
	LineThickness float64
}

func NewFlightPdf() *FlightPdf {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetFont("Arial", "", 10)
	return &FlightPdf{
		Fpdf: pdf,
		Plan: &PlanView{},
		Side: &SideView{},
		LineThickness: 0.4,
	}
}

// {{{ projectAll

type xyAlt struct { x,y,alt float64 }

func projectAll(tp TrackProjector, f *traffic.Flight) ([]xyAlt, error) {
	if err := tp.Setup(f); err != nil {
		return nil, fmt.Errorf("%s: %w", tp.Description(), err)
	}
	ret := []xyAlt{}
	for _,r := range f.Reports().Sorted() {
		x,y,ok := tp.Project(r)
		if !ok { continue }
		ret = append(ret, xyAlt{x, y, r.Altitude})
	}
	return ret, nil
}

func bounds(pts []xyAlt) (minX,maxX,minY,maxY float64) {
	minX,minY = math.Inf(1), math.Inf(1)
	maxX,maxY = math.Inf(-1), math.Inf(-1)
	for _,p := range pts {
		minX,maxX = math.Min(minX,p.x), math.Max(maxX,p.x)
		minY,maxY = math.Min(minY,p.y), math.Max(maxY,p.y)
	}
	return
}

// }}}
// {{{ fp.drawGrid

func (fp *FlightPdf)drawGrid(bg *BaseGrid, title string, pts []xyAlt, equalAspect bool) {
	bg.Fpdf = fp.Fpdf
	bg.Clip = true

	if len(pts) > 0 {
		minX,maxX,minY,maxY := bounds(pts)
		bg.Fit(minX,maxX,minY,maxY)
		if equalAspect { equalizeAspect(bg) }
	}

	bg.DrawFrame()
	fp.SetXY(bg.OffsetU, bg.OffsetV-6)
	fp.SetTextColor(0,0,0)
	fp.SetFont("Arial", "", 9)
	fp.Cell(bg.W, 5, title)
	if len(pts) == 0 { return }
	bg.DrawGridlines()

	fp.SetLineWidth(fp.LineThickness)
	for i:=1; i<len(pts); i++ {
		rgb := altitudeToRGB(pts[i-1].alt)
		fp.SetDrawColor(rgb[0], rgb[1], rgb[2])
		bg.Line(pts[i-1].x, pts[i-1].y, pts[i].x, pts[i].y)
	}
}

// Widen whichever axis needs it, so a km is the same length both ways.
func equalizeAspect(bg *BaseGrid) {
	sx := (bg.MaxX - bg.MinX) / bg.W
	sy := (bg.MaxY - bg.MinY) / bg.H
	if sx > sy {
		mid,half := (bg.MaxY+bg.MinY)/2, sx*bg.H/2
		bg.MinY,bg.MaxY = mid-half, mid+half
	} else {
		mid,half := (bg.MaxX+bg.MinX)/2, sy*bg.W/2
		bg.MinX,bg.MaxX = mid-half, mid+half
	}
	bg.XGridlineEvery = niceStep(bg.MaxX-bg.MinX, 8)
	bg.YGridlineEvery = niceStep(bg.MaxY-bg.MinY, 8)
}

// }}}
// {{{ fp.AddFlight

// AddFlight draws the flight on a new page.
func (fp *FlightPdf)AddFlight(f *traffic.Flight, caption string) error {
	// A flight with no positions still gets its side view
	plan,err := projectAll(fp.Plan, f)
	if err != nil && !errors.Is(err, traffic.ErrInvalidInput) { return err }
	side,err := projectAll(fp.Side, f)
	if err != nil && !errors.Is(err, traffic.ErrInvalidInput) { return err }

	fp.AddPage()

	fp.drawGrid(&BaseGrid{OffsetU:25, OffsetV:20, W:120, H:150, XTickFmt:"%.0f", YTickFmt:"%.0f"},
		fp.Plan.Description(), plan, true)
	fp.drawGrid(&BaseGrid{OffsetU:170, OffsetV:20, W:95, H:150, XTickFmt:"%.0f", YTickFmt:"%.0f",
		LineColor:RedRGB}, fp.Side.Description(), side, false)

	fp.SetTextColor(0,0,0)
	fp.SetFont("Arial", "", 10)
	fp.SetXY(25, 185)
	fp.Cell(240, 10, caption)
	return nil
}

// }}}
// {{{ WriteFlights

// WriteFlights renders one page per flight. The caption of each page is the flight's String().
func WriteFlights(output io.Writer, flights []*traffic.Flight) error {
	fp := NewFlightPdf()
	for _,f := range flights {
		fp.Plan = &PlanView{}
		if err := fp.AddFlight(f, f.String()); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return fp.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
