package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chargesim/internal/particles"
	"github.com/san-kum/chargesim/internal/viz"
)

// Point is one recorded particle position.
type Point struct{ X, Y float64 }

// Options controls which layers FrameToSVG draws.
type Options struct {
	Width, Height int
	Field         bool
	Potential     bool
	// Trails holds one recorded path per particle, drawn under the particles.
	Trails [][]Point
}

const particleRadius = 3

// FrameToSVG renders the current state of sys the way the window does: an
// optional potential heatmap, field segments over grid, trails, then the
// particles. World coordinates in b are stretched onto Width×Height.
func FrameToSVG(sys *particles.System, grid particles.Grid, b particles.Bounds, opts Options) string {
	if sys == nil || opts.Width <= 0 || opts.Height <= 0 || b.Width() <= 0 || b.Height() <= 0 {
		return ""
	}
	sx := float64(opts.Width) / b.Width()
	sy := float64(opts.Height) / b.Height()
	tx := func(x float64) float64 { return (x - b.XMin) * sx }
	ty := func(y float64) float64 { return (y - b.YMin) * sy }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, opts.Width, opts.Height, opts.Width, opts.Height))

	if opts.Potential {
		sb.WriteString("<g>\n")
		for _, c := range sys.SamplePotential(grid) {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, tx(c.X), ty(c.Y), c.Width*sx, c.Height*sy, hex(viz.HeatColor(c.Potential))))
		}
		sb.WriteString("</g>\n")
	}

	if opts.Field && sys.Len() > 0 {
		sb.WriteString(`<g stroke="#c8c8c8" stroke-width="1">` + "\n")
		for _, s := range sys.SampleField(grid) {
			if !s.Valid {
				continue
			}
			x0, y0 := tx(s.X), ty(s.Y)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x0+s.DX*sx, y0+s.DY*sy))
		}
		sb.WriteString("</g>\n")
	}

	ps := sys.Particles()
	for i, trail := range opts.Trails {
		if len(trail) < 2 {
			continue
		}
		stroke := "#666666"
		if i < len(ps) {
			stroke = hex(ps[i].Color)
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1" d="M`, stroke))
		for j, p := range trail {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", tx(p.X), ty(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", tx(p.X), ty(p.Y)))
			}
		}
		sb.WriteString(`"/>` + "\n")
	}

	for _, p := range ps {
		if !p.IsValid() {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="%s"/>
`, tx(p.X), ty(p.Y), particleRadius, hex(p.Color)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Recorder collects particle trails frame by frame. Trails follow particle
// IDs, so a particle spawned in place of a removed one starts a new trail.
type Recorder struct {
	Trails [][]Point
	ids    []uint64
	every  int
}

// NewRecorder keeps one point every n frames.
func NewRecorder(n int) *Recorder {
	if n < 1 {
		n = 1
	}
	return &Recorder{every: n}
}

// Record appends the positions of sys at the given frame.
func (r *Recorder) Record(sys *particles.System, frame int) {
	if frame%r.every != 0 {
		return
	}
	ps := sys.Particles()
	if len(r.Trails) > len(ps) {
		r.Trails = r.Trails[:len(ps)]
		r.ids = r.ids[:len(ps)]
	}
	for i, p := range ps {
		if i == len(r.Trails) {
			r.Trails = append(r.Trails, nil)
			r.ids = append(r.ids, p.ID)
		} else if r.ids[i] != p.ID {
			r.Trails[i] = nil
			r.ids[i] = p.ID
		}
	}
	for i, p := range ps {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		r.Trails[i] = append(r.Trails[i], Point{p.X, p.Y})
	}
}

func hex(c color.Color) string {
	if c == nil {
		return "#ffffff"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
