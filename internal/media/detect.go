package media

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

var audioExts = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
}

// IsSupportedExt returns true if the extension is a format the player can decode.
func IsSupportedExt(ext string) bool {
	_, ok := audioExts[strings.ToLower(ext)]
	return ok
}

// SupportedExtsList returns a human-readable list of decodable formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// DetectType reports the media type of the file at path without parameters.
// Content sniffing wins; files whose bytes are unrecognized fall back to
// their extension.
func DetectType(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	typ := baseType(m.String())
	if typ != octetStream {
		return typ, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := audioExts[ext]; ok {
		return t, nil
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return baseType(t), nil
	}
	return typ, nil
}

// IsAudioType reports whether typ belongs to the audio/* family.
func IsAudioType(typ string) bool {
	return strings.HasPrefix(strings.ToLower(baseType(typ)), "audio/")
}

func baseType(typ string) string {
	t, _, _ := strings.Cut(typ, ";")
	return strings.TrimSpace(t)
}
