// Package input reads generated events from JETSCAPE ascii, proio and LCIO
// files.
package input

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/decibelcooper/ttbarplot/event"
)

var (
	// ErrMalformed is returned for input that cannot be decoded.
	ErrMalformed = errors.New("malformed input")
	// ErrUnknownFormat is returned by Open when no reader matches.
	ErrUnknownFormat = errors.New("unknown input format")
)

// Format names accepted by Open.
const (
	FormatAscii = "ascii"
	FormatProio = "proio"
	FormatLCIO  = "lcio"
)

// Source yields events in file order. Next returns io.EOF once the input
// is exhausted.
type Source interface {
	Next() (event.Event, error)
	Close() error
}

// Open opens path with the reader for format. An empty format is guessed
// from the file extension.
func Open(path, format string) (Source, error) {
	if format == "" {
		format = FormatOf(path)
	}
	switch strings.ToLower(format) {
	case FormatAscii:
		return OpenAscii(path)
	case FormatProio:
		return OpenProio(path)
	case FormatLCIO, "slcio":
		return OpenLCIO(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FormatOf guesses the format of path from its extension. It returns ""
// for unknown extensions.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dat", ".txt", ".out":
		return FormatAscii
	case ".proio":
		return FormatProio
	case ".slcio":
		return FormatLCIO
	}
	return ""
}
