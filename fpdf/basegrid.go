package fpdf

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// Describes a grid we're going to plot over, and the location of its top-left corner in PDF space
type BaseGrid struct {
	*gofpdf.Fpdf        // Embed the thing we're writing to

	// The portion of PDF page space the grid is drawn over (tick labels go outside of this)
	OffsetU,OffsetV float64 // top-left, in PDF coords (mm)
	W,H             float64

	// How (x,y) vals are mapped into (u,v) vals
	MinX,MinY,MaxX,MaxY float64 // origin is bottom-left
	Clip                bool    // whether to skip segments that leave the grid

	NoGridlines                    bool
	XGridlineEvery, YGridlineEvery float64 // zero means pick something
	XTickFmt,       YTickFmt       string  // passed a float64 via fmt.Sprintf; blank==none

	LineColor []int // rgb, each [0,255] - axis labels
}

// Fit sets the grid's range to cover the values, with a little margin, and picks gridline
// spacing if it hasn't been set. Degenerate ranges get widened so we never divide by zero.
func (bg *BaseGrid)Fit(minX,maxX,minY,maxY float64) {
	pad := func(lo,hi float64) (float64,float64) {
		if hi-lo < 1e-9 { return lo-1, hi+1 }
		m := (hi-lo) * 0.05
		return lo-m, hi+m
	}
	bg.MinX,bg.MaxX = pad(minX,maxX)
	bg.MinY,bg.MaxY = pad(minY,maxY)
	if bg.XGridlineEvery <= 0 { bg.XGridlineEvery = niceStep(bg.MaxX-bg.MinX, 8) }
	if bg.YGridlineEvery <= 0 { bg.YGridlineEvery = niceStep(bg.MaxY-bg.MinY, 6) }
}

// niceStep picks a 1/2/5 x 10^k step giving roughly n intervals over span.
func niceStep(span float64, n int) float64 {
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _,m := range []float64{1, 2, 5} {
		if m*mag >= raw { return m*mag }
	}
	return 10*mag
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)U(x float64) (float64, bool) {
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	return bg.OffsetU + (xRatio * bg.W), xRatio<0 || xRatio>1
}

func (bg BaseGrid)V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	return bg.OffsetV + (bg.H - (yRatio * bg.H)), yRatio<0 || yRatio>1 // PDF's V runs down the page
}

func (bg BaseGrid)UV(x,y float64) (float64, float64, bool) {
	u,oobU := bg.U(x)
	v,oobV := bg.V(y)
	return u, v, (oobU || oobV)
}

// }}}
// {{{ bg.MoveTo, LineTo, Line

// We submit coords in gridspace (e.g. x,y), and the grid transforms them into PDFspace.
func (bg BaseGrid)MoveTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.MoveTo(u,v)
	return oob
}

func (bg BaseGrid)LineTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.LineTo(u,v)
	return oob
}

// Only draws the line if both points are inside bounds (when clipping)
func (bg BaseGrid)Line(x1,y1,x2,y2 float64) {
	u1,v1,oob1 := bg.UV(x1,y1)
	u2,v2,oob2 := bg.UV(x2,y2)
	if bg.Clip && (oob1 || oob2) { return }
	bg.Fpdf.MoveTo(u1,v1)
	bg.Fpdf.LineTo(u2,v2)
	bg.DrawPath("D")
}

// }}}
// {{{ bg.DrawFrame, DrawGridlines

func (bg BaseGrid)DrawFrame() {
	bg.SetDrawColor(0, 0, 0)
	bg.SetLineWidth(0.3)
	bg.Rect(bg.OffsetU, bg.OffsetV, bg.W, bg.H, "D")
}

// firstTick is the smallest multiple of step that is >= min.
func firstTick(min, step float64) float64 { return math.Ceil(min/step) * step }

func (bg BaseGrid)DrawGridlines() {
	bg.SetFont("Arial", "", 7)
	bg.SetLineWidth(0.03)
	bg.SetDrawColor(0xe0, 0xe0, 0xe0)

	if bg.XGridlineEvery > 0 {
		for x := firstTick(bg.MinX, bg.XGridlineEvery); x <= bg.MaxX; x += bg.XGridlineEvery {
			if !bg.NoGridlines {
				bg.MoveTo(x, bg.MinY)
				bg.LineTo(x, bg.MaxY)
				bg.DrawPath("D")
			}
			if bg.XTickFmt != "" {
				u,v,_ := bg.UV(x, bg.MinY)
				bg.SetTextColor(0,0,0)
				bg.SetXY(u-10, v+1)
				bg.CellFormat(20, 4, fmt.Sprintf(bg.XTickFmt, x), "", 0, "C", false, 0, "")
			}
		}
	}

	if bg.YGridlineEvery > 0 {
		for y := firstTick(bg.MinY, bg.YGridlineEvery); y <= bg.MaxY; y += bg.YGridlineEvery {
			if !bg.NoGridlines {
				bg.MoveTo(bg.MinX, y)
				bg.LineTo(bg.MaxX, y)
				bg.DrawPath("D")
			}
			if bg.YTickFmt != "" {
				u,v,_ := bg.UV(bg.MinX, y)
				if len(bg.LineColor) == 3 {
					bg.SetTextColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
				}
				bg.SetXY(u-19, v-2)
				bg.CellFormat(18, 4, fmt.Sprintf(bg.YTickFmt, y), "", 0, "R", false, 0, "")
			}
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
