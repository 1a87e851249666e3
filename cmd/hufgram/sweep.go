package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/hufgram/hufgram"
)

// commandSweep encodes the input once per group size in [minN, maxN] and
// renders an SVG scatter of group size against serialized archive size.
func commandSweep(input, output string, minN, maxN int) error {
	if minN < 1 || maxN < minN {
		return fmt.Errorf("bad sweep range [%d, %d]", minN, maxN)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	text := string(data)
	name := filepath.Base(input)

	sizes := make(map[int]int, maxN-minN+1)
	for n := minN; n <= maxN; n++ {
		enc := hufgram.NewEncoder(hufgram.WithGroupSize(n), hufgram.WithName(name))
		archive, err := enc.Encode(text)
		if err != nil {
			return err
		}
		var cw countingWriter
		if _, err := archive.WriteTo(&cw); err != nil {
			return err
		}
		sizes[n] = int(cw.n)
		fmt.Printf("N=%2d -> %d bytes (%.2f%%)\n", n, cw.n, percent(int(cw.n), len(data)))
	}

	return scatterIntMap(output, sizes)
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func percent(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return 100 * float64(num) / float64(denom)
}

// Scatter plot for an X, Y int map.
func scatterIntMap(path string, results map[int]int) error {
	keys := make([]int, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	for _, k := range keys {
		xvals = append(xvals, float64(k))
		yvals = append(yvals, float64(results[k]))
	}

	graph := chart.Chart{
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					DotWidth: 3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.SVG, fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
