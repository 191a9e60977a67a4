package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/selberhad/vibesurfer/internal/surf"
)

func main() {
	var opts surf.Options
	flag.StringVar(&opts.CameraPreset, "camera", "fixed", "camera preset: fixed, basic, cinematic, floating")
	flag.Float64Var(&opts.Elevation, "elevation", 0, "fixed camera elevation in meters (0 = default)")
	flag.Float64Var(&opts.FloatHeight, "float-height", 0, "floating camera height above terrain in meters (0 = default)")
	flag.Float64Var(&opts.RecordSecs, "record", 0, "record audio for N seconds, then exit")
	flag.Uint64Var(&opts.Seed, "seed", 0, "synth variation seed (0 = random)")
	flag.Parse()

	if err := surf.RunDesktop(opts); err != nil {
		fmt.Fprintln(os.Stderr, "vibesurfer:", err)
		os.Exit(1)
	}
}
