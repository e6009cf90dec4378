package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"surfglobe/internal/geo"
)

// Base colours the globe shading blends between
var (
	colorDeepOcean    = colorful.Color{R: 0.02, G: 0.09, B: 0.25}
	colorShallowOcean = colorful.Color{R: 0.10, G: 0.35, B: 0.60}
	colorLowland      = colorful.Color{R: 0.20, G: 0.45, B: 0.20}
	colorHighland     = colorful.Color{R: 0.55, G: 0.60, B: 0.30}
)

// Style definitions for the globe layers and panels
var (
	StyleGraticule    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleCountry      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleCoastline    = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	StyleRim          = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	StyleCity         = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleSurfSpot     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleMarker       = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleHeader       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
	StyleHint         = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleError        = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleLoading      = tcell.StyleDefault.Foreground(tcell.ColorLightCyan)
	StylePanelBorder  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	StylePanelTitle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleControl      = tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Background(tcell.ColorNavy)
	StyleControlOff   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorNavy).Dim(true)
)

// GetStyleForFeature returns the appropriate style for a feature type
func GetStyleForFeature(ftype geo.FeatureType) tcell.Style {
	switch ftype {
	case geo.FeatureGraticule:
		return StyleGraticule
	case geo.FeatureCountry:
		return StyleCountry
	case geo.FeatureCoastline:
		return StyleCoastline
	case geo.FeatureCity:
		return StyleCity
	case geo.FeatureSurfSpot:
		return StyleSurfSpot
	default:
		return tcell.StyleDefault
	}
}

// GetCharForFeature returns the appropriate character for drawing a feature
func GetCharForFeature(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureGraticule:
		return '·'
	case geo.FeatureCountry:
		return '-'
	case geo.FeatureCoastline:
		return '*'
	case geo.FeatureCity:
		return '•'
	case geo.FeatureSurfSpot:
		return '≈'
	default:
		return '·'
	}
}

// OceanStyle shades an ocean cell. depth is 1 facing the viewer and 0 on the
// rim, so the disc darkens towards its edge.
func OceanStyle(depth float64) tcell.Style {
	return tcell.StyleDefault.Background(blend(colorDeepOcean, colorShallowOcean, lighting(depth)))
}

// LandStyle shades a land cell the same way as OceanStyle
func LandStyle(depth float64) tcell.Style {
	return tcell.StyleDefault.Background(blend(colorLowland, colorHighland, lighting(depth)))
}

// lighting is a Lambertian term with a floor of ambient light
func lighting(depth float64) float64 {
	if math.IsNaN(depth) {
		return 0.2
	}
	return math.Max(0.2, math.Min(1, depth))
}

func blend(from, to colorful.Color, t float64) tcell.Color {
	c := from.BlendLab(to, t).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
