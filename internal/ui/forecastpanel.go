package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"surfglobe/internal/forecast"
	"surfglobe/internal/render"
)

// ForecastPanel displays a multi-day forecast as a list of days with the
// selected day's summary beneath
type ForecastPanel struct {
	forecast      *forecast.SurfForecast
	selectedIndex int
	x, y          int
	width, height int
}

// NewForecastPanel creates a new forecast panel
func NewForecastPanel(x, y, width, height int) *ForecastPanel {
	return &ForecastPanel{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// SetForecast sets the forecast to display and selects the first day
func (p *ForecastPanel) SetForecast(f *forecast.SurfForecast) {
	p.forecast = f
	p.selectedIndex = 0
}

// Forecast returns the displayed forecast
func (p *ForecastPanel) Forecast() *forecast.SurfForecast {
	return p.forecast
}

// SelectNext moves selection down
func (p *ForecastPanel) SelectNext() {
	if p.selectedIndex < p.forecast.Days()-1 {
		p.selectedIndex++
	}
}

// SelectPrev moves selection up
func (p *ForecastPanel) SelectPrev() {
	if p.selectedIndex > 0 {
		p.selectedIndex--
	}
}

// GetSelected returns the currently selected day
func (p *ForecastPanel) GetSelected() *forecast.DailyForecast {
	if p.forecast == nil || p.selectedIndex >= len(p.forecast.Forecast) {
		return nil
	}
	return &p.forecast.Forecast[p.selectedIndex]
}

// PreferredHeight returns the rows needed to show every day, the summary and
// the border
func PreferredHeight(f *forecast.SurfForecast) int {
	return f.Days() + 4
}

// Draw renders the panel to the screen
func (p *ForecastPanel) Draw(screen tcell.Screen) {
	if p.forecast == nil || p.width < 4 || p.height < 3 {
		return
	}

	// Clear the entire panel area first (make it opaque)
	for row := p.y + 1; row < p.y+p.height-1; row++ {
		for col := p.x + 1; col < p.x+p.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}

	p.drawBorder(screen)

	title := render.Truncate(" Surf Forecast: "+p.forecast.LocationName+" ", p.width-4)
	titleX := p.x + (p.width-render.TextWidth(title))/2
	drawText(screen, titleX, p.y, title, render.StylePanelTitle)

	inner := p.width - 2
	rows := p.height - 4 // border, blank separator and summary
	start := 0
	if p.selectedIndex >= rows && rows > 0 {
		start = p.selectedIndex - rows + 1
	}

	for i := 0; i < rows && start+i < len(p.forecast.Forecast); i++ {
		idx := start + i
		style := render.StyleListItem
		if idx == p.selectedIndex {
			style = render.StyleListSelected
		}

		text := render.Truncate(" "+FormatDay(p.forecast.Forecast[idx]), inner)
		row := p.y + 1 + i
		n := drawText(screen, p.x+1, row, text, style)
		for col := n; col < inner; col++ {
			screen.SetContent(p.x+1+col, row, ' ', nil, style)
		}
	}

	if day := p.GetSelected(); day != nil && p.height >= 4 {
		summary := render.Truncate(" "+day.Summary, inner)
		drawText(screen, p.x+1, p.y+p.height-2, summary, render.StyleHint)
	}

	instructions := " ↑/↓ day · Esc close "
	instX := p.x + (p.width-render.TextWidth(instructions))/2
	drawText(screen, instX, p.y+p.height-1, instructions, render.StyleLabel.Dim(true))
}

// FormatDay renders one table row: day, wave range, swell period and wind
func FormatDay(d forecast.DailyForecast) string {
	return fmt.Sprintf("%-4s %9s  %4ss swell  %4skt %-3s",
		d.Day,
		num(d.WaveHeight.Min)+"-"+num(d.WaveHeight.Max)+"m",
		num(d.SwellPeriod),
		num(d.WindSpeed),
		d.WindDirection)
}

// num prints a value with as few digits as it needs
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// drawBorder draws the panel border
func (p *ForecastPanel) drawBorder(screen tcell.Screen) {
	style := render.StylePanelBorder

	screen.SetContent(p.x, p.y, '┌', nil, style)
	screen.SetContent(p.x+p.width-1, p.y, '┐', nil, style)
	screen.SetContent(p.x, p.y+p.height-1, '└', nil, style)
	screen.SetContent(p.x+p.width-1, p.y+p.height-1, '┘', nil, style)

	for i := 1; i < p.width-1; i++ {
		screen.SetContent(p.x+i, p.y, '─', nil, style)
		screen.SetContent(p.x+i, p.y+p.height-1, '─', nil, style)
	}

	for i := 1; i < p.height-1; i++ {
		screen.SetContent(p.x, p.y+i, '│', nil, style)
		screen.SetContent(p.x+p.width-1, p.y+i, '│', nil, style)
	}
}

// UpdateDimensions updates the view dimensions
func (p *ForecastPanel) UpdateDimensions(x, y, width, height int) {
	p.x = x
	p.y = y
	p.width = width
	p.height = height
}

// drawText writes text to the screen honouring wide runes and returns the
// columns used
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	col := 0
	for _, ch := range text {
		w := render.TextWidth(string(ch))
		if w == 0 {
			continue
		}
		screen.SetContent(x+col, y, ch, nil, style)
		col += w
	}
	return col
}
