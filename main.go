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

// Package main implements the simpletree driver.  In check mode it runs a
// randomized workload against the B-tree and a reference map and reports the
// first divergence; in bench mode it times the B-tree against the reference
// maps and writes the results as CSV and charts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/9rum/simpletree/btree"
	"github.com/9rum/simpletree/internal/harness"
	"github.com/9rum/simpletree/internal/reference"
	"github.com/9rum/simpletree/internal/report"
	"github.com/golang/glog"
)

func main() {
	check := harness.DefaultConfig()
	bench := harness.DefaultBenchConfig()

	mode := flag.String("mode", "check", "The mode to run, one of check or bench")
	minEntries := flag.Int("min-entries", btree.DefaultMinEntries, "The minimum number of entries in a non-root node")
	against := flag.String("against", "sorted", "The reference map to check against, one of sorted or pebble")
	ops := flag.Int("ops", check.Ops, "The number of operations to check")
	keySpace := flag.Uint("keyspace", uint(check.KeySpace), "The size of the key space to check over")
	seed := flag.Int64("seed", check.Seed, "The random seed")
	verifyEvery := flag.Int("verify-every", check.VerifyEvery, "The number of operations between full comparisons")
	dump := flag.Bool("dump", false, "Print the tree to stdout after a successful check")
	rounds := flag.Int("rounds", bench.Rounds, "The number of rounds per measurement")
	csvPath := flag.String("csv", "", "The file to write benchmark results to, stdout if empty")
	chartDir := flag.String("charts", "", "The directory to write a chart per benchmark group to, none if empty")
	flag.Parse()

	switch *mode {
	case "check":
		check.Ops, check.KeySpace, check.Seed, check.VerifyEvery = *ops, uint32(*keySpace), *seed, *verifyEvery
		if err := runCheck(*minEntries, *against, check, *dump); err != nil {
			glog.Fatalf("check failed: %v", err)
		}
	case "bench":
		bench.Rounds, bench.Seed = *rounds, *seed
		if err := runBench(*minEntries, bench, *csvPath, *chartDir); err != nil {
			glog.Fatalf("bench failed: %v", err)
		}
	default:
		glog.Fatalf("unknown mode %q", *mode)
	}
	glog.Flush()
}

func openReference(name string) (reference.Map, error) {
	switch name {
	case "sorted":
		return reference.NewSorted(), nil
	case "pebble":
		return reference.OpenPebble()
	default:
		return nil, fmt.Errorf("unknown reference map %q", name)
	}
}

func runCheck(minEntries int, against string, cfg harness.Config, dump bool) error {
	ref, err := openReference(against)
	if err != nil {
		return err
	}
	defer ref.Close()

	subject := reference.NewTree(minEntries)
	glog.Infof("checking %d operations over %d keys against %s", cfg.Ops, cfg.KeySpace, against)
	if err := harness.Check(subject, ref, cfg); err != nil {
		return err
	}
	tree := subject.Unwrap()
	glog.Infof("check passed: len=%d height=%d", tree.Len(), tree.Height())

	if dump {
		return tree.Dump(os.Stdout)
	}
	return nil
}

func runBench(minEntries int, cfg harness.BenchConfig, csvPath, chartDir string) error {
	impls := []harness.Impl{
		{Name: "simpletree", New: func() (reference.Map, error) { return reference.NewTree(minEntries), nil }},
		{Name: "sorted", New: func() (reference.Map, error) { return reference.NewSorted(), nil }},
		{Name: "pebble", New: func() (reference.Map, error) { return reference.OpenPebble() }},
	}

	results, err := harness.Bench(impls, cfg, func(r harness.Result) {
		glog.V(1).Infof("%v", r)
	})
	if err != nil {
		return err
	}
	glog.Infof("measured %d results", len(results))

	out := os.Stdout
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteCSV(out, results); err != nil {
		return err
	}

	if chartDir == "" {
		return nil
	}
	if err := os.MkdirAll(chartDir, 0o755); err != nil {
		return err
	}
	for _, group := range []string{harness.GroupInsert, harness.GroupRange, harness.GroupRemove} {
		path := filepath.Join(chartDir, group+".png")
		if err := report.Chart(path, group, results); err != nil {
			return err
		}
		glog.Infof("wrote %s", path)
	}
	return nil
}
