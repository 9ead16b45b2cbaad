package blink

// Acquisition of cutout grids from a directory of TIFF files. This is
// the boundary with whatever produced the cutouts; nothing past here
// cares about files, formats, or metadata.

import(
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

// A Cutout is one acquired frame: the pixel grid plus the identifiers
// used for ordering and labelling.
type Cutout struct {
	Name     string
	Grid     bmath.FloatGrid
	Observed time.Time // zero when the file carries no EXIF timestamp
}

// LoadDir scans `dir` for TIFF cutouts and returns them in temporal
// order - EXIF DateTime when every frame has one, filename order
// otherwise (see OrderCutouts). A file
// that fails to decode is skipped and reported in `skipped`; one bad
// cutout must never abort the batch.
func LoadDir(dir string) (cutouts []Cutout, skipped []string, err error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("readdir '%s': %v", dir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".tif", ".tiff":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := LoadCutout(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Skipping %s: %v\n", name, err)
			skipped = append(skipped, name)
			continue
		}
		cutouts = append(cutouts, c)
	}

	OrderCutouts(cutouts)

	return cutouts, skipped, nil
}

// OrderCutouts sorts frames into temporal order by EXIF timestamp,
// but only when every frame carries one - a mixed batch keeps its
// incoming (filename) order, the only total order we can trust at
// that point. The sort is stable, so ties don't reshuffle.
func OrderCutouts(cutouts []Cutout) {
	for i := range cutouts {
		if cutouts[i].Observed.IsZero() {
			return
		}
	}
	sort.SliceStable(cutouts, func(i, j int) bool {
		return cutouts[i].Observed.Before(cutouts[j].Observed)
	})
}

func LoadCutout(filename string) (Cutout, error) {
	c := Cutout{Name: filepath.Base(filename)}

	reader, err := os.Open(filename)
	if err != nil {
		return c, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	img, err := tiff.Decode(reader)
	reader.Close()
	if err != nil {
		return c, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}
	c.Grid = GridFromImage(img)

	// EXIF is optional on cutouts; a missing or unparseable block just
	// means this frame sorts by filename.
	if reader, err := os.Open(filename); err == nil {
		if ex, err := exif.Decode(reader); err == nil {
			if when, err := ex.DateTime(); err == nil {
				c.Observed = when
			}
		}
		reader.Close()
	}

	return c, nil
}

// GridFromImage flattens any image into a luminance FloatGrid. Cutout
// TIFFs are grayscale, so "luminance" is just the channel average.
func GridFromImage(img image.Image) bmath.FloatGrid {
	b := img.Bounds()
	fg := bmath.NewFloatGrid(b.Dx(), b.Dy())
	for x := 0; x < b.Dx(); x++ {
		for y := 0; y < b.Dy(); y++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			fg.Set(x, y, float64(r+g+bb)/3.0)
		}
	}
	return fg
}
