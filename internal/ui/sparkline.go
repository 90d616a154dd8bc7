package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrom/internal/state"
)

// SparklineWidth is the maximum width of the elevation sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	elevColorLow  = [3]uint8{0x1b, 0x2b, 0x4b} // dark blue
	elevColorMid  = [3]uint8{0x34, 0x78, 0xc0} // blue
	elevColorHigh = [3]uint8{0x8b, 0xe9, 0xff} // cyan
)

// renderElevationSparkline renders an elevation history (degrees) as a
// sparkline, one cell per bucket, followed by the latest value.
func renderElevationSparkline(hist []state.TimeSeries) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	samples := resampleSeries(hist, SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("No elevation history yet")
	}

	var sb strings.Builder
	for _, elev := range samples {
		t := elev / 90
		r, g, b := interpolateElevColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparkBlock(elev))))
	}

	last := hist[len(hist)-1].Value
	nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.1f°", last)))
	return sb.String()
}

// sparkBlock maps an elevation in degrees to a block; below the horizon is
// the lowest block.
func sparkBlock(elev float64) rune {
	if elev < 0 {
		elev = 0
	}
	if elev > 90 {
		elev = 90
	}
	idx := int(elev / 90 * 7)
	if idx > 7 {
		idx = 7
	}
	return sparklineBlocks[idx]
}

func interpolateElevColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	lo, hi, s := elevColorLow, elevColorMid, t*2
	if t >= 0.5 {
		lo, hi, s = elevColorMid, elevColorHigh, (t-0.5)*2
	}
	mix := func(i int) uint8 {
		return uint8(float64(lo[i])*(1-s) + float64(hi[i])*s)
	}
	return mix(0), mix(1), mix(2)
}

// resampleSeries averages a history into at most width buckets. Shorter
// histories are returned unchanged.
func resampleSeries(samples []state.TimeSeries, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}
	if len(samples) <= width {
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = s.Value
		}
		return out
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * perBucket)
		end := int(float64(i+1) * perBucket)
		if end > len(samples) {
			end = len(samples)
		}
		if start >= end {
			start = end - 1
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += samples[j].Value
		}
		result[i] = sum / float64(end-start)
	}
	return result
}
