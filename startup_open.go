package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// startup describes what the UI opens with: an optional file to load and the
// directory the file picker starts in.
type startup struct {
	file string
	dir  string
}

// resolveStartup interprets the positional argument. A directory only sets
// the picker location; a file is loaded and its directory becomes the
// picker location. Content validation is left to the playback controller so
// a non-audio argument gets the same notice as a picked one.
func resolveStartup(arg string) (startup, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return startup{dir: "."}, nil
		}
		return startup{dir: wd}, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return startup{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return startup{}, err
	}
	if info.IsDir() {
		return startup{dir: abs}, nil
	}
	if !info.Mode().IsRegular() {
		return startup{}, fmt.Errorf("%s is not a regular file", arg)
	}
	return startup{file: abs, dir: filepath.Dir(abs)}, nil
}
