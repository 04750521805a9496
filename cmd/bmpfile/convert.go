package main

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/bodgit/bmpfile"
	"github.com/ericpauley/go-quantize/quantize"
	_ "github.com/sergeymakinen/go-bmp"
	"github.com/urfave/cli/v2"
)

const maxColors = 256

func loadBMP(file string) ([]byte, bmpfile.ImageProperties, error) {
	var p bmpfile.ImageProperties
	if err := bmpfile.LoadProperties(file, &p); err != nil {
		return nil, p, err
	}
	buf := make([]byte, bmpfile.ComputeBufferSize(p))
	if err := bmpfile.Load(file, buf, &p, 0); err != nil {
		return nil, p, err
	}
	return buf, p, nil
}

// decodeImage reads any image format registered with the image package,
// falling back to it for BMP variants that bmpfile rejects.
func decodeImage(file string) (image.Image, error) {
	buf, p, err := loadBMP(file)
	switch bmpfile.ResultOf(err) {
	case bmpfile.Ok:
		return bmpfile.ToImage(buf, p)
	case bmpfile.NotABmpFile, bmpfile.UnsupportedCompression, bmpfile.UnsupportedBitPerPixel, bmpfile.UnsupportedUseOfColorTable:
	case bmpfile.Corrupt:
		// Bit depths such as 2 fail the header check as corrupt
	default:
		return nil, err
	}

	f, ferr := os.Open(file)
	if ferr != nil {
		return nil, ferr
	}
	defer f.Close()

	m, _, derr := image.Decode(f)
	if derr != nil {
		if bmpfile.ResultOf(err) == bmpfile.Corrupt {
			return nil, err
		}
		return nil, derr
	}
	return m, nil
}

// posterize reduces m to at most n colors.
func posterize(m image.Image, n int) image.Image {
	if n > maxColors {
		n = maxColors
	}
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	m, err := decodeImage(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if n := c.Int("colors"); n > 0 {
		m = posterize(m, n)
	}

	format := bmpfile.BGR8
	switch {
	case c.Bool("gray"):
		format = bmpfile.Mono8
	case c.Bool("alpha"):
		format = bmpfile.BGRA8
	}

	buf, p, err := bmpfile.FromImage(m, format)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var flags bmpfile.Flag
	if c.Bool("top-down") {
		flags |= bmpfile.PreserveOrientation
	}

	if err := bmpfile.Save(c.Args().Get(1), buf, p, flags); err != nil {
		return cli.NewExitError(err, 1)
	}
	logger.Printf("Converted \"%s\" into %dx%d %s \"%s\"\n", c.Args().Get(0), p.Width, p.Height, p.PixelFormat, c.Args().Get(1))

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	buf, p, err := loadBMP(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	m, err := bmpfile.ToImage(buf, p)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return cli.NewExitError(err, 1)
	}

	return f.Close()
}
