package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bodgit/tileassist"
	"github.com/bodgit/tileassist/codec"
	"github.com/bodgit/tileassist/palette"
	"github.com/bodgit/tileassist/reduce"
	"github.com/bodgit/tileassist/tile"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultDB = "tileassist.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// withAssist opens the database, restores any saved image and settings and
// runs fn. If save is set the snapshot and settings are written back
// afterwards.
func withAssist(c *cli.Context, save bool, fn func(*tileassist.Assist) error) (err error) {
	logger, err := newLogger(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	store, err := tileassist.NewStore(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	p := palette.Default()
	a := tileassist.New(p, logger)

	settings, err := store.LoadSettings(p)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := a.SetSettings(settings); err != nil {
		return cli.Exit(err, 1)
	}

	snapshot, err := store.LoadSnapshot()
	if err != nil {
		return cli.Exit(err, 1)
	}
	if snapshot != nil {
		if err := a.Restore(c.Context, snapshot); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if err := fn(a); err != nil {
		return cli.Exit(err, 1)
	}

	if !save {
		return nil
	}

	if err := store.SaveSettings(a.Settings()); err != nil {
		return cli.Exit(err, 1)
	}
	snapshot, err = a.Snapshot()
	switch err {
	case nil:
		err = store.SaveSnapshot(snapshot)
	case tileassist.ErrNoSource:
		err = store.ClearSnapshot()
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func intArgs(c *cli.Context, n int) ([]int, error) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	out := make([]int, n)
	for i := range out {
		v, err := strconv.Atoi(c.Args().Get(i))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func parsePoint(s string) (image.Point, error) {
	var pt image.Point
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return pt, fmt.Errorf("invalid coordinate %q", s)
	}
	var err error
	if pt.X, err = strconv.Atoi(x); err != nil {
		return pt, err
	}
	if pt.Y, err = strconv.Atoi(y); err != nil {
		return pt, err
	}
	return pt, nil
}

func printHistogram(c *cli.Context, h reduce.Histogram) error {
	w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
	for _, count := range h {
		fmt.Fprintf(w, "%s\t%d\n", count.Name, count.Count)
	}
	return w.Flush()
}

func loadAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withAssist(c, true, func(a *tileassist.Assist) error {
		p := a.Palette()

		colors := c.StringSlice("colors")
		switch {
		case len(colors) > 0:
		case c.Bool("free-only"):
			colors = p.Free()
		default:
			colors = p.Names()
		}

		cfg, _, err := codec.DecodeConfig(data)
		if err != nil {
			return err
		}
		size := tileassist.FitSize(image.Pt(cfg.Width, cfg.Height), c.Int("width"), c.Int("height"), c.Bool("lock"))

		placement := a.Placement()
		if err := a.SetImage(c.Context, data, size, reduce.Config{Colors: colors, Dithering: c.Bool("dither")}); err != nil {
			return err
		}
		a.SetLockAspectRatio(c.Bool("lock"))
		a.SetPlacement(placement)

		return printHistogram(c, a.Source().Histogram())
	})
}

func placeAction(c *cli.Context) error {
	if c.Bool("clear") {
		return withAssist(c, true, func(a *tileassist.Assist) error {
			a.SetPlacement(nil)
			return nil
		})
	}

	args, err := intArgs(c, 4)
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withAssist(c, true, func(a *tileassist.Assist) error {
		if a.Source().State() != tileassist.StateReady {
			return tileassist.ErrNoSource
		}
		a.SetPlacement(&tile.Placement{TileX: args[0], TileY: args[1], LocalX: args[2], LocalY: args[3]})

		first, last := a.Placement().Span(a.Source().Raster().Rect.Size())
		fmt.Fprintf(c.App.Writer, "%s to %s\n", first, last)
		return nil
	})
}

func settingsAction(c *cli.Context) error {
	return withAssist(c, true, func(a *tileassist.Assist) error {
		s := a.Settings()

		if c.IsSet("mode") {
			mode, err := tileassist.ParseMode(c.String("mode"))
			if err != nil {
				return err
			}
			s.Mode = mode
		}
		if c.IsSet("background") {
			background, err := tileassist.ParseBackground(c.String("background"))
			if err != nil {
				return err
			}
			s.Background = background
		}
		if c.IsSet("opacity") {
			s.Opacity = c.Float64("opacity")
		}
		if c.IsSet("background-opacity") {
			s.BackgroundOpacity = c.Float64("background-opacity")
		}
		if c.IsSet("hide") {
			s.Show = !c.Bool("hide")
		}
		if c.IsSet("colors") {
			if _, err := a.Palette().Colors(c.StringSlice("colors")); err != nil {
				return err
			}
			s.Colors = c.StringSlice("colors")
		}

		if err := a.SetSettings(s); err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
		fmt.Fprintf(w, "show\t%v\n", s.Show)
		fmt.Fprintf(w, "mode\t%s\n", s.Mode)
		fmt.Fprintf(w, "opacity\t%v\n", s.Opacity)
		fmt.Fprintf(w, "background\t%s\n", s.Background)
		fmt.Fprintf(w, "background opacity\t%v\n", s.BackgroundOpacity)
		fmt.Fprintf(w, "colors\t%s\n", strings.Join(s.Colors, ", "))
		return w.Flush()
	})
}

func renderAction(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.NArg() < 4 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	raw, err := os.ReadFile(c.Args().Get(2))
	if err != nil {
		return cli.Exit(err, 1)
	}

	return withAssist(c, false, func(a *tileassist.Assist) error {
		return os.WriteFile(c.Args().Get(3), a.RenderTile(args[0], args[1], raw), 0o644)
	})
}

func progressAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	return withAssist(c, false, func(a *tileassist.Assist) error {
		if err := a.RenderDir(c.Args().First(), c.String("out"), c.Int("workers")); err != nil {
			return err
		}

		progress, stale := a.Progress()
		if stale {
			return nil
		}

		w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
		var painted, total int
		for _, p := range progress {
			fmt.Fprintf(w, "%s\t%d/%d\n", p.Name, p.Painted, p.Total)
			painted += p.Painted
			total += p.Total
		}
		fmt.Fprintf(w, "Total\t%d/%d\n", painted, total)
		return w.Flush()
	})
}

func correctAction(c *cli.Context) error {
	args, err := intArgs(c, 2)
	if err != nil {
		return cli.Exit(err, 1)
	}

	coords := make([]image.Point, 0, c.NArg()-2)
	for _, s := range c.Args().Slice()[2:] {
		pt, err := parsePoint(s)
		if err != nil {
			return cli.Exit(err, 1)
		}
		coords = append(coords, pt)
	}

	colors := make([]uint8, len(coords))
	for i := range colors {
		colors[i] = uint8(c.Uint("color"))
	}

	return withAssist(c, false, func(a *tileassist.Assist) error {
		colors = a.CorrectPlacement(args[0], args[1], coords, colors)
		for i, pt := range coords {
			fmt.Fprintf(c.App.Writer, "%d,%d %d\n", pt.X, pt.Y, colors[i])
		}
		return nil
	})
}

func suggestAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	m, _, err := codec.Decode(data)
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, name := range reduce.Suggest(palette.Default(), m, c.Int("count")) {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

func paletteAction(c *cli.Context) error {
	w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
	for _, e := range palette.Default().Entries() {
		paid := ""
		if e.Paid {
			paid = "paid"
		}
		fmt.Fprintf(w, "%d\t%s\t#%02x%02x%02x%02x\t%s\n", e.Index, e.Name, e.RGBA.R, e.RGBA.G, e.RGBA.B, e.RGBA.A, paid)
	}
	return w.Flush()
}

func main() {
	app := cli.NewApp()

	app.Name = "tileassist"
	app.Usage = "Pixel canvas template overlay utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TILEASSIST_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "load",
			Usage:       "Load and reduce an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "resize to `PIXELS` wide",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "resize to `PIXELS` high",
				},
				&cli.BoolFlag{
					Name:  "lock",
					Usage: "keep the aspect ratio when resizing",
				},
				&cli.StringSliceFlag{
					Name:  "colors",
					Usage: "enable only these palette colors",
				},
				&cli.BoolFlag{
					Name:  "free-only",
					Usage: "enable only the free palette colors",
				},
				&cli.BoolFlag{
					Name:  "dither",
					Usage: "use Floyd-Steinberg dithering",
				},
			},
			Action: loadAction,
		},
		{
			Name:        "place",
			Usage:       "Anchor the image on the canvas",
			Description: "",
			ArgsUsage:   "TILEX TILEY LOCALX LOCALY",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "clear",
					Usage: "remove the placement",
				},
			},
			Action: placeAction,
		},
		{
			Name:        "settings",
			Usage:       "Change how the overlay is drawn",
			Description: "",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "mode",
					Usage: "overlay mode, image or progress",
				},
				&cli.Float64Flag{
					Name:  "opacity",
					Usage: "overlay opacity from 0 to 1",
				},
				&cli.StringFlag{
					Name:  "background",
					Usage: "background, map, black or white",
				},
				&cli.Float64Flag{
					Name:  "background-opacity",
					Usage: "background opacity from 0 to 1",
				},
				&cli.BoolFlag{
					Name:  "hide",
					Usage: "hide the overlay",
				},
				&cli.StringSliceFlag{
					Name:  "colors",
					Usage: "overlay only these palette colors",
				},
			},
			Action: settingsAction,
		},
		{
			Name:        "render",
			Usage:       "Draw the overlay onto a single tile",
			Description: "",
			ArgsUsage:   "TILEX TILEY IN OUT",
			Action:      renderAction,
		},
		{
			Name:        "progress",
			Usage:       "Draw the overlay onto a directory of tiles and report progress",
			Description: "Tiles are named X_Y.png after their tile coordinate.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Usage: "write composited tiles to `DIRECTORY`",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 4,
					Usage: "number of tiles to render concurrently",
				},
			},
			Action: progressAction,
		},
		{
			Name:        "correct",
			Usage:       "Correct the colors of pixels being placed",
			Description: "",
			ArgsUsage:   "TILEX TILEY X,Y...",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  "color",
					Value: 1,
					Usage: "palette `INDEX` being placed",
				},
			},
			Action: correctAction,
		},
		{
			Name:        "suggest",
			Usage:       "Suggest palette colors for an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "count",
					Value: 16,
					Usage: "number of colors to suggest",
				},
			},
			Action: suggestAction,
		},
		{
			Name:   "palette",
			Usage:  "List the palette colors",
			Action: paletteAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
