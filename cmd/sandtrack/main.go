/*------------------------------------------------------------------------------
* main.go : read digitized or Monte-Carlo hit input and reconstruct tracks
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*
* history : 2025/01/xx  1.0 new
*-----------------------------------------------------------------------------*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"sandtrack"
)

var PROGNAME = "sandtrack"

var help = []string{
	"",
	" usage: sandtrack -wireinfo FILE [-edep FILE | -digit FILE] -o FILE [option]...",
	"",
	" Reconstruct charged-particle tracks from drift-chamber wire hits, either",
	" by digitizing Monte-Carlo energy-deposit segments or by reading already",
	" digitized hits, against the wire table given by -wireinfo.",
	"",
	" -wireinfo file  wire table (id,x,y,z,length,orientation,ax,ay,az) [required]",
	" -edep file      JSON Monte-Carlo input: {pdg,primary,segments}",
	" -digit file     JSON pre-digitized input: {pdg,hits}",
	" -o file         output file for the reconstructed RecoResult [required]",
	" -config file    JSON configuration overriding the built-in defaults [off]",
	" -seed n         random seed for TDC smearing [1]",
	" -helicity n     seed helicity, +1 or -1 [1]",
	" -debug level    trace level, 0 off [0]",
}

func searchHelp(key string) string {
	for _, v := range help {
		if strings.Contains(v, key) {
			return v
		}
	}
	return "no supported argument"
}

/* mcInput is the JSON shape accepted by -edep. */
type mcInput struct {
	PDG      int                    `json:"pdg"`
	Primary  sandtrack.Primary      `json:"primary"`
	Segments []sandtrack.EdepSegment `json:"segments"`
}

/* digitInput is the JSON shape accepted by -digit. */
type digitInput struct {
	PDG  int                   `json:"pdg"`
	Hits []sandtrack.WireHit   `json:"hits"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		wireinfoFile, edepFile, digitFile, outFile, configFile string
		seed                                                   int64
		helicity, debugLevel                                   int
	)
	helicity = 1
	seed = 1

	flag.StringVar(&wireinfoFile, "wireinfo", "", searchHelp("-wireinfo"))
	flag.StringVar(&edepFile, "edep", "", searchHelp("-edep"))
	flag.StringVar(&digitFile, "digit", "", searchHelp("-digit"))
	flag.StringVar(&outFile, "o", "", searchHelp("-o"))
	flag.StringVar(&configFile, "config", "", searchHelp("-config"))
	flag.Int64Var(&seed, "seed", seed, searchHelp("-seed"))
	flag.IntVar(&helicity, "helicity", helicity, searchHelp("-helicity"))
	flag.IntVar(&debugLevel, "debug", 0, searchHelp("-debug"))
	flag.Parse()

	if wireinfoFile == "" || outFile == "" || (edepFile == "" && digitFile == "") {
		for _, h := range help {
			fmt.Println(h)
		}
		return -1
	}

	sandtrack.SetTraceLevel(debugLevel)

	cfg := sandtrack.DefaultConfig()
	if configFile != "" {
		loaded, err := sandtrack.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = loaded
	}

	wires, err := sandtrack.ReadWireInfo(wireinfoFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	geom, err := sandtrack.BuildFromWireInfo(wires, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx := sandtrack.NewContext(geom, cfg, seed)

	var pdg int
	var hits []sandtrack.WireHit

	if edepFile != "" {
		var in mcInput
		if err := decodeJSONFile(edepFile, &in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		pdg = in.PDG
		hits, err = sandtrack.DigitizeFromSegments(ctx, in.Segments, wires, primaryIDOf(in.Segments))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		var in digitInput
		if err := decodeJSONFile(digitFile, &in); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		pdg = in.PDG
		hits = in.Hits
	}

	reconstructor := sandtrack.NewReconstructor(helicity)
	result, err := reconstructor.Reconstruct(ctx, hits)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	result = sandtrack.ApplySelection(ctx, pdg, result)

	if err := writeJSONFile(outFile, result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func primaryIDOf(segments []sandtrack.EdepSegment) int {
	if len(segments) == 0 {
		return 0
	}
	return segments[0].PrimaryID
}

func decodeJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: open %q: %w", PROGNAME, path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%s: decode %q: %w", PROGNAME, path, err)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: marshal result: %w", PROGNAME, err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("%s: write %q: %w", PROGNAME, path, err)
	}
	return nil
}
