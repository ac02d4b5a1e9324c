package filereader

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/IgorBayerl/logscan/internal/filesystem"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// AutoEncoding selects the decoder from a leading byte order mark and falls
// back to UTF-16LE when there is none.
const AutoEncoding = "auto"

// DefaultEncoding is what console redirection on the producing runtime writes.
const DefaultEncoding = "UTF-16LE"

// NewDecoder returns a fresh decoder for the named encoding. Names are
// resolved through the IANA registry, so "UTF-16LE", "utf-8" and
// "ISO-8859-1" all work.
func NewDecoder(name string) (transform.Transformer, error) {
	if strings.EqualFold(name, AutoEncoding) {
		fallback := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		return unicode.BOMOverride(fallback.NewDecoder()), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		// Registered name without an implementation in x/text.
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

// LoadFile reads the whole file into memory. The handle is released before
// this function returns, so no decoding ever happens with the file open.
func LoadFile(fsys filesystem.Filesystem, path string) ([]byte, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return raw, nil
}

// Decode converts raw bytes to text. Sequences the decoder cannot map come
// out as U+FFFD and are dropped here, so corrupt input shrinks instead of
// failing the scan. A literal U+FFFD in the source is dropped too.
func Decode(raw []byte, decoder transform.Transformer) (string, error) {
	dropInvalid := runes.Remove(runes.Predicate(func(r rune) bool {
		return r == utf8.RuneError
	}))
	text, _, err := transform.Bytes(transform.Chain(decoder, dropInvalid), raw)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(text), nil
}

// SplitLines splits on '\n' only. Order is kept, as are empty entries, and
// any '\r' stays attached to its line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// ReadLinesInFile loads, decodes and splits a file in one go.
func ReadLinesInFile(fsys filesystem.Filesystem, path string, encodingName string) ([]string, error) {
	decoder, err := NewDecoder(encodingName)
	if err != nil {
		return nil, err
	}

	raw, err := LoadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded file", "path", path, "bytes", len(raw), "encoding", encodingName)

	text, err := Decode(raw, decoder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return SplitLines(text), nil
}
