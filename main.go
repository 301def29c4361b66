package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ripple/internal/config"
	"github.com/olivier-w/ripple/internal/session"
	"github.com/olivier-w/ripple/internal/spectrum"
	"github.com/olivier-w/ripple/internal/ui"
)

const debugLogFile = "ripple-debug.log"

type flags struct {
	config string
	fps    int
	fft    int
	volume float64
	debug  bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ripple", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ripple [flags] [file|dir]\n\n")
		fs.PrintDefaults()
	}
	var f flags
	fs.StringVar(&f.config, "config", "", "path to a YAML config file")
	fs.IntVar(&f.fps, "fps", 0, "frame rate override")
	fs.IntVar(&f.fft, "fft", 0, "analyser FFT size override (power of two)")
	fs.Float64Var(&f.volume, "volume", -1, "initial volume 0..1")
	fs.BoolVar(&f.debug, "debug", false, "write a debug log to "+debugLogFile)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	if cfg.Debug {
		lf, err := tea.LogToFile(debugLogFile, "ripple")
		if err != nil {
			return err
		}
		defer lf.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	start, err := resolveStartup(fs.Arg(0))
	if err != nil {
		return err
	}

	analyser, err := spectrum.NewAnalyser(cfg.Audio.FFTSize, cfg.Audio.Smoothing)
	if err != nil {
		return err
	}
	audio := session.NewAudio(analyser, cfg.Audio.Volume)
	defer audio.Close()

	sess, err := session.New(cfg, audio, analyser)
	if err != nil {
		return err
	}
	defer sess.Close()

	model := ui.New(sess, ui.Options{
		Clock:      audio,
		Dir:        start.dir,
		WaterColor: cfg.Water.Color,
		FPS:        cfg.FPS,
		Debug:      cfg.Debug,
	})
	if start.file != "" {
		model = model.Open(start.file)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// loadConfig reads the config file named by -config, or the default
// locations, then applies flag overrides and validates the result.
func loadConfig(f flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		if err := cfg.LoadFromFile(f.config); err != nil {
			return nil, err
		}
	} else {
		cfg.TryLoadDefault()
	}

	if f.fps > 0 {
		cfg.FPS = f.fps
	}
	if f.fft > 0 {
		cfg.Audio.FFTSize = f.fft
	}
	if f.volume >= 0 {
		cfg.Audio.Volume = f.volume
	}
	cfg.Debug = f.debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
