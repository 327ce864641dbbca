package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bodgit/popn"
	"github.com/bodgit/popn/chart"
	"github.com/bodgit/popn/midi"
	"github.com/urfave/cli/v2"
)

const defaultDB = "popn.db"

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

func config(c *cli.Context) chart.Config {
	cfg := chart.DefaultConfig()
	cfg.MaxSteps = c.Int("max-steps")
	return cfg
}

func detectFile(c *cli.Context, file string) ([]chart.Mask, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return chart.DetectImage(m, config(c))
}

func printMasks(w io.Writer, masks []chart.Mask) {
	for i, m := range masks {
		fmt.Fprintf(w, "%5d %s %3d\n", i, m, m)
	}
}

func open(c *cli.Context) (*popn.Popn, error) {
	return popn.New(c.String("db"), newLogger(c), config(c))
}

func main() {
	app := cli.NewApp()

	app.Name = "popn"
	app.Usage = "pop'n music chart image note extractor"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"POPN_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.IntFlag{
			Name:    "max-steps",
			EnvVars: []string{"POPN_MAX_STEPS"},
			Value:   chart.DefaultMaxSteps,
			Usage:   "maximum pixels visited by a single scan before giving up",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "detect",
			Usage:       "Print the notes in a chart image",
			Description: "Each line shows the index, the lanes as o or . and the mask value.",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				masks, err := detectFile(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				printMasks(os.Stdout, masks)

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Detect a chart image and store it in the database",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				ch, err := p.Import(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%s %s %d %d\n", ch.SHA1, ch.UUID, ch.Notes.Len(), ch.Notes.Count())

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and generate notes files",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "midi",
			Usage:       "Convert a chart image to a MIDI file",
			Description: "Every line of the chart becomes a sixteenth note.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  "bpm",
					Value: midi.DefaultOptions.BPM,
					Usage: "tempo of the MIDI file",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				masks, err := detectFile(c, c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				o := midi.DefaultOptions
				o.BPM = c.Float64("bpm")
				if err := midi.Encode(f, masks, o); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "serve",
			Usage:       "Serve the database over HTTP",
			Description: "",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "listen",
					EnvVars: []string{"POPN_LISTEN"},
					Value:   ":8080",
					Usage:   "address to listen on",
				},
			},
			Action: func(c *cli.Context) error {
				p, err := open(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := http.ListenAndServe(c.String("listen"), p.Handler()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
