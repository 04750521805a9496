package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/bmpfile"
	"github.com/bodgit/bmpfile/catalog"
	"github.com/urfave/cli/v2"
)

const defaultDB = "bmpfile.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	var failed bool
	for _, file := range c.Args().Slice() {
		var p bmpfile.ImageProperties
		if err := bmpfile.LoadProperties(file, &p); err != nil {
			fmt.Fprintf(c.App.Writer, "%s: %s\n", file, bmpfile.ResultOf(err))
			failed = true
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: %dx%d %s %s, line padding %d, buffer size %d\n", file, p.Width, p.Height, p.PixelFormat, p.Orientation, p.LinePadding, bmpfile.ComputeBufferSize(p))
	}

	if failed {
		return cli.NewExitError("", 1)
	}
	return nil
}

func flip(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	buf, p, err := loadBMP(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// Relabelling the rows mirrors the image once it is written bottom-up
	if p.Orientation == bmpfile.TopDown {
		p.Orientation = bmpfile.BottomUp
	} else {
		p.Orientation = bmpfile.TopDown
	}

	if err := bmpfile.Save(c.Args().Get(1), buf, p, 0); err != nil {
		return cli.NewExitError(err, 1)
	}
	logger.Printf("Flipped \"%s\" into \"%s\"\n", c.Args().Get(0), c.Args().Get(1))

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := catalog.New(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	if err := catalog.NewIndexer(cat, newLogger(c)).Scan(c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	cat, err := catalog.New(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	var entries []catalog.Entry
	if sha := c.String("sha1"); sha != "" {
		entries, err = cat.FindBySHA1(sha)
	} else {
		entries, err = cat.List()
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, e := range entries {
		p := e.Properties
		fmt.Fprintf(c.App.Writer, "%s %s %dx%d %s %s\n", e.SHA1, e.Path, p.Width, p.Height, p.PixelFormat, p.Orientation)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "bmpfile"
	app.Usage = "BMP file inspection and conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BMPFILE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the properties of BMP files",
			ArgsUsage: "FILE...",
			Action:    info,
		},
		{
			Name:      "flip",
			Usage:     "Mirror a BMP file vertically",
			ArgsUsage: "INPUT OUTPUT",
			Action:    flip,
		},
		{
			Name:      "convert",
			Usage:     "Convert an image to a BMP file",
			ArgsUsage: "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "gray",
					Usage: "write 8-bit grayscale",
				},
				&cli.BoolFlag{
					Name:  "alpha",
					Usage: "write 32-bit with alpha",
				},
				&cli.BoolFlag{
					Name:  "top-down",
					Usage: "store the first line at the top",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce to at most this many colors",
				},
			},
			Action: convert,
		},
		{
			Name:      "export",
			Usage:     "Convert a BMP file to PNG",
			ArgsUsage: "INPUT OUTPUT",
			Action:    export,
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem and catalog BMP files",
			ArgsUsage: "DIRECTORY",
			Action:    scan,
		},
		{
			Name:  "list",
			Usage: "List cataloged BMP files",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "sha1",
					Usage: "only list files with this checksum",
				},
			},
			Action: list,
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
