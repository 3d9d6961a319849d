package attendanceservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// ChartPalette carries the colors the rate chart renders with.
type ChartPalette struct {
	Background drawing.Color
	BarColor   drawing.Color
	TextColor  drawing.Color
}

// DefaultPalette is a dark theme matching the web client.
var DefaultPalette = ChartPalette{
	Background: drawing.Color{R: 24, G: 26, B: 27, A: 255},
	BarColor:   drawing.Color{R: 64, G: 140, B: 200, A: 255},
	TextColor:  drawing.Color{R: 220, G: 220, B: 220, A: 255},
}

// RenderRateChart draws the guild's per-character attendance rates as a
// PNG bar chart. Success carries []byte.
func (s *AttendanceService) RenderRateChart(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RenderRateChart", 0, func(ctx context.Context) (results.OperationResult, error) {
		summaries, err := s.repo.Summarize(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		png, err := GenerateRateChart(summaries, DefaultPalette)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("render rate chart: %w", err)
		}
		return results.SuccessResult(png), nil
	})
}

// GenerateRateChart produces a PNG bar chart of attendance rates.
func GenerateRateChart(summaries []attendancedomain.CharacterSummary, palette ChartPalette) ([]byte, error) {
	if len(summaries) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, 0, len(summaries))
	for _, summary := range summaries {
		bars = append(bars, chart.Value{
			Label: summary.CharacterName,
			Value: summary.Rate() * 100,
			Style: chart.Style{
				FillColor:   palette.BarColor,
				StrokeColor: palette.BarColor,
			},
		})
	}

	graph := chart.BarChart{
		Width:    1000,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Name: "Attendance %",
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No attendance recorded"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		// Render refuses an empty chart, so draw a line the same color
		// as the canvas and put the message on top of it.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style: chart.Style{
					StrokeColor: palette.Background,
				},
			},
		},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
