// seehuhn.de/go/pen - interactive vector path editing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Command export replays all editing scenarios and writes the resulting
// paths, as anchor records, to testdata/scenarios.json.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pen"
	"seehuhn.de/go/pen/config"
	"seehuhn.de/go/pen/scenarios"
	"seehuhn.de/go/pen/vpath"
)

type output struct {
	Scenarios []scenarioResult `json:"scenarios" yaml:"scenarios"`
}

type scenarioResult struct {
	Name     string               `json:"name" yaml:"name"`
	State    string               `json:"state" yaml:"state"`
	Closed   bool                 `json:"closed" yaml:"closed"`
	Anchors  []vpath.AnchorRecord `json:"anchors" yaml:"anchors"`
	Selected []int                `json:"selected,omitempty" yaml:"selected,omitempty"`
	Deltas   int                  `json:"deltas" yaml:"deltas"`
}

func main() {
	format := flag.String("format", "json", "output format (json or yaml)")
	out := flag.String("o", "testdata/scenarios.json", "output file, - for stdout")
	confDir := flag.String("config", ".", "directory containing "+config.FileName)
	verbose := flag.Bool("v", false, "log state transitions")
	flag.Parse()

	if *verbose {
		pen.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*format, *out, *confDir); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(format, out, confDir string) error {
	cfg, err := config.LoadOptional(confDir)
	if err != nil {
		return err
	}

	var res output
	for _, category := range slices.Sorted(maps.Keys(scenarios.All)) {
		for _, sc := range scenarios.All[category] {
			res.Scenarios = append(res.Scenarios, toResult(category, sc, cfg))
		}
	}

	if out == "-" {
		return write(os.Stdout, format, res)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(f, format, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func write(w io.Writer, format string, res output) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func toResult(category string, sc scenarios.Scenario, cfg *config.Config) scenarioResult {
	r := scenarios.Run(sc, cfg)
	sr := scenarioResult{
		Name:    category + "_" + sc.Name,
		State:   r.Machine.State().String(),
		Closed:  r.Path.Closed,
		Anchors: make([]vpath.AnchorRecord, r.Path.Len()),
		Deltas:  len(r.Deltas),
	}
	for i, a := range r.Path.Anchors {
		sr.Anchors[i] = a.Record()
	}
	for _, h := range r.Machine.Selected() {
		sr.Selected = append(sr.Selected, r.Path.IndexOf(h.Point))
	}
	return sr
}
