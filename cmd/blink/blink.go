package main

import(
	"flag"
	"log"

	"github.com/abworrall/cutout-blink/pkg/blink"
	"github.com/abworrall/cutout-blink/pkg/bmath"
)

var(
	fConfigFilename  string
	fOutputFilename  string
	fMosaicFilename  string
	fFrameDurationMs int
	fSigma           float64
	fMatchBackground bool
	fMatchNoise      bool
	fPalette         string
	fVerbosity       int
)

func init() {
	flag.StringVar(&fConfigFilename, "c", "", "yaml config file (flags override it)")
	flag.StringVar(&fOutputFilename, "o", "", "name of output GIF file")
	flag.StringVar(&fMosaicFilename, "mosaic", "", "also write a mosaic PNG of the raw cutouts, each cell auto-scaled")
	flag.IntVar(&fFrameDurationMs, "duration", 0, "per-frame display duration, in ms")
	flag.Float64Var(&fSigma, "sigma", 0, "sigma-clip threshold for background estimation")
	flag.BoolVar(&fMatchBackground, "matchbg", true, "subtract per-frame background, so frames share a zero-centered sky")
	flag.BoolVar(&fMatchNoise, "matchnoise", false, "divide frames by per-frame noise (SNR-like display)")
	flag.StringVar(&fPalette, "palette", "", "palette: "+blink.ListPalettes())
	flag.IntVar(&fVerbosity, "v", 0, "verbosity")
}

// overrideFromFlags applies command line args over the config file.
// The bool flags only win when actually given on the command line, so
// a config file's matchbackground/matchnoise values stay in force.
func overrideFromFlags(c *blink.Config) {
	if fOutputFilename != ""  { c.OutputFilename = fOutputFilename }
	if fFrameDurationMs > 0   { c.FrameDurationMs = fFrameDurationMs }
	if fSigma > 0.0           { c.Sigma = fSigma }
	if fPalette != ""         { c.Palette = fPalette }
	if fVerbosity > 0         { c.Verbosity = fVerbosity }

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "matchbg":    c.MatchBackground = fMatchBackground
		case "matchnoise": c.MatchNoise = fMatchNoise
		}
	})
}

func main() {
	flag.Parse()
	log.Printf("Starting\n")

	c := blink.NewConfig()
	if fConfigFilename != "" {
		var err error
		if c, err = blink.LoadConfig(fConfigFilename); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfigFilename)
	}
	overrideFromFlags(&c)

	dir := "."
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	cutouts, skipped, err := blink.LoadDir(dir)
	if err != nil {
		log.Fatal(err)
	}
	if len(skipped) > 0 {
		log.Printf("Skipped %d unreadable cutouts: %v\n", len(skipped), skipped)
	}

	if fMosaicFilename != "" {
		img, err := blink.Mosaic(c, cutouts)
		if err != nil {
			log.Fatalf("Mosaic: %v\n", err)
		}
		if err := blink.WritePNG(img, fMosaicFilename); err != nil {
			log.Fatal(err)
		}
		log.Printf("Mosaic written to '%s'\n", fMosaicFilename)
	}

	grids := make([]bmath.FloatGrid, 0, len(cutouts))
	for _, cut := range cutouts {
		grids = append(grids, cut.Grid)
	}

	batch, err := blink.Normalize(c, grids)
	if err != nil {
		log.Fatalf("Normalize: %v\n", err)
	}
	log.Printf("%d frames share display range [%f, %f]\n", len(batch.Frames), batch.DisplayMin, batch.DisplayMax)

	frames := make([]blink.RenderedFrame, 0, len(batch.Frames))
	for i, cut := range cutouts {
		frames = append(frames, blink.Render(c, batch.Frames[i], batch.DisplayMin, batch.DisplayMax, cut.Name))
	}

	if err := blink.AssembleGIF(frames, c.FrameDurationMs, c.OutputFilename); err != nil {
		log.Fatalf("AssembleGIF: %v\n", err)
	}
}
