package player

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds tag information shown under the track name.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// Subtitle joins artist and album for display, skipping empty parts.
func (m Metadata) Subtitle() string {
	switch {
	case m.Artist != "" && m.Album != "":
		return m.Artist + " - " + m.Album
	case m.Artist != "":
		return m.Artist
	default:
		return m.Album
	}
}

// ReadMetadata reads ID3v2 tags from MP3 files. Other formats, and MP3s
// without a title tag, fall back to the file name without extension.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
				Album:  strings.TrimSpace(tag.Album()),
			}
			if m.Title != "" {
				return m
			}
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
