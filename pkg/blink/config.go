package blink

import(
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
sigma: 3.0
maxiterations: 5
matchbackground: true
matchnoise: false
qmin: 0.01
qmax: 0.99
palette: gray
stretch: linear
framedurationms: 500
outputfilename: cutouts.gif

*/

type Config struct {
	Verbosity       int

	// Robust background estimation
	Sigma           float64 // clip threshold, in stddev multiples
	MaxIterations   int

	// Per-frame corrections
	MatchBackground bool    // subtract per-frame clipped background
	MatchNoise      bool    // divide by per-frame rms (SNR-like display)

	// Shared display range, as quantiles of the pooled batch pixels
	QMin            float64
	QMax            float64

	// Rendering and assembly
	Palette         string  // see ListPalettes()
	Stretch         string  // tonemap used when no shared range, see ListStretches()
	FrameDurationMs int
	OutputFilename  string

	// Mosaic view: every cell gets its own quantile range, so these
	// are separate from the batch-shared QMin/QMax
	MosaicColumns   int
	MosaicQMin      float64
	MosaicQMax      float64
}

func NewConfig() Config {
	return Config{
		Sigma:           3.0,
		MaxIterations:   5,
		MatchBackground: true,
		QMin:            0.01,
		QMax:            0.99,
		Palette:         "gray",
		Stretch:         "linear",
		FrameDurationMs: 500,
		OutputFilename:  "cutouts.gif",
		MosaicColumns:   5,
		MosaicQMin:      0.0,
		MosaicQMax:      0.99,
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read '%s': %v", filename, err)
	}
	return NewConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

func (c Config)Validate() error {
	if c.QMin < 0.0 || c.QMax > 1.0 || c.QMax < c.QMin {
		return fmt.Errorf("bad quantiles [%f, %f], want 0 <= qmin <= qmax <= 1", c.QMin, c.QMax)
	}
	if c.Sigma <= 0.0 {
		return fmt.Errorf("bad sigma %f, want > 0", c.Sigma)
	}
	if c.MosaicQMin < 0.0 || c.MosaicQMax > 1.0 || c.MosaicQMax < c.MosaicQMin {
		return fmt.Errorf("bad mosaic quantiles [%f, %f], want 0 <= qmin <= qmax <= 1", c.MosaicQMin, c.MosaicQMax)
	}
	if c.MosaicColumns <= 0 {
		return fmt.Errorf("bad mosaic columns %d, want > 0", c.MosaicColumns)
	}
	return nil
}
