// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report writes benchmark results as CSV and as line charts.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/9rum/simpletree/internal/harness"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Header is the first record written by WriteCSV.
var Header = []string{"group", "impl", "size", "ns_per_op"}

// WriteCSV writes one record per result after Header.
func WriteCSV(w io.Writer, results []harness.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Group,
			r.Impl,
			strconv.Itoa(r.Size),
			strconv.FormatFloat(r.NsPerOp, 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// ErrNoResults is returned by Chart when no result belongs to the group.
var ErrNoResults = errors.New("report: no results")

// Series returns the results of group as one line per implementation, in
// order of first appearance, each sorted by size.
func Series(group string, results []harness.Result) (impls []string, lines []plotter.XYs) {
	index := make(map[string]int)
	for _, r := range results {
		if r.Group != group {
			continue
		}
		i, found := index[r.Impl]
		if !found {
			i = len(impls)
			index[r.Impl] = i
			impls = append(impls, r.Impl)
			lines = append(lines, nil)
		}
		lines[i] = append(lines[i], plotter.XY{X: float64(r.Size), Y: r.NsPerOp})
	}
	for _, line := range lines {
		slices.SortFunc(line, func(a, b plotter.XY) int {
			switch {
			case a.X < b.X:
				return -1
			case b.X < a.X:
				return 1
			default:
				return 0
			}
		})
	}
	return
}

// Chart draws the results of group as a size versus ns/op line chart, one
// line per implementation, and saves it to path.  The image format follows
// the extension of path.
func Chart(path, group string, results []harness.Result) error {
	impls, lines := Series(group, results)
	if len(impls) == 0 {
		return fmt.Errorf("%w for group %q", ErrNoResults, group)
	}

	p := plot.New()
	p.Title.Text = group
	p.X.Label.Text = "size"
	p.Y.Label.Text = "ns/op"
	p.Legend.Top = true

	args := make([]interface{}, 0, 2*len(impls))
	for i, impl := range impls {
		args = append(args, impl, lines[i])
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
