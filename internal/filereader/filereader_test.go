package filereader

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/IgorBayerl/logscan/internal/filesystem"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileInfo implements fs.FileInfo for testing.
type MockFileInfo struct {
	name string
	size int64
}

func (m MockFileInfo) Name() string       { return m.name }
func (m MockFileInfo) Size() int64        { return m.size }
func (m MockFileInfo) Mode() fs.FileMode  { return 0 }
func (m MockFileInfo) ModTime() time.Time { return time.Now() }
func (m MockFileInfo) IsDir() bool        { return false }
func (m MockFileInfo) Sys() interface{}   { return nil }

// trackingFile records whether it was closed.
type trackingFile struct {
	r       io.Reader
	readErr error
	closed  bool
}

func (f *trackingFile) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.r.Read(p)
}

func (f *trackingFile) Close() error {
	f.closed = true
	return nil
}

// MockFilesystem serves files from memory and remembers what it opened.
type MockFilesystem struct {
	files   map[string][]byte
	readErr error
	opened  []*trackingFile
}

func (m *MockFilesystem) Open(name string) (io.ReadCloser, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	f := &trackingFile{r: bytes.NewReader(content), readErr: m.readErr}
	m.opened = append(m.opened, f)
	return f, nil
}

func (m *MockFilesystem) Stat(name string) (fs.FileInfo, error) {
	content, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return MockFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
}

func (m *MockFilesystem) Abs(path string) (string, error) {
	return filepath.Join("/logs", path), nil
}

var _ filesystem.Filesystem = (*MockFilesystem)(nil)

func encodeUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

func TestLoadFile_ClosesHandle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fsys := &MockFilesystem{files: map[string][]byte{"server.log": []byte("abc")}}

		raw, err := LoadFile(fsys, "server.log")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), raw)
		require.Len(t, fsys.opened, 1)
		assert.True(t, fsys.opened[0].closed, "file must be closed once LoadFile returns")
	})

	t.Run("ReadFailure", func(t *testing.T) {
		fsys := &MockFilesystem{
			files:   map[string][]byte{"server.log": []byte("abc")},
			readErr: errors.New("device gone"),
		}

		_, err := LoadFile(fsys, "server.log")
		require.ErrorContains(t, err, "read file server.log")
		require.Len(t, fsys.opened, 1)
		assert.True(t, fsys.opened[0].closed)
	})

	t.Run("Missing", func(t *testing.T) {
		fsys := &MockFilesystem{files: map[string][]byte{}}

		_, err := LoadFile(fsys, "server.log")
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Empty(t, fsys.opened)
	})
}

func TestDecode_UTF16LE(t *testing.T) {
	dec, err := NewDecoder(DefaultEncoding)
	require.NoError(t, err)

	text, err := Decode(encodeUTF16LE("Error: Cannot find module 'é'\r\n"), dec)
	require.NoError(t, err)
	assert.Equal(t, "Error: Cannot find module 'é'\r\n", text)
}

func TestDecode_DropsInvalidSequences(t *testing.T) {
	raw := encodeUTF16LE("ab")
	raw = append(raw, 0x00, 0xD8) // lone high surrogate
	raw = append(raw, encodeUTF16LE("cd")...)
	raw = append(raw, 0x41) // dangling odd byte

	dec, err := NewDecoder(DefaultEncoding)
	require.NoError(t, err)

	text, err := Decode(raw, dec)
	require.NoError(t, err)
	assert.Equal(t, "abcd", text)
}

func TestDecode_InvalidUTF8Dropped(t *testing.T) {
	dec, err := NewDecoder("UTF-8")
	require.NoError(t, err)

	text, err := Decode([]byte("MODULE\xffNOT\xfe_FOUND"), dec)
	require.NoError(t, err)
	assert.Equal(t, "MODULENOT_FOUND", text)
}

func TestNewDecoder_Auto(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"NoBOMFallsBackToUTF16LE", encodeUTF16LE("hello")},
		{"UTF16LEBOM", append([]byte{0xFF, 0xFE}, encodeUTF16LE("hello")...)},
		{"UTF8BOM", append([]byte{0xEF, 0xBB, 0xBF}, "hello"...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := NewDecoder("auto")
			require.NoError(t, err)

			text, err := Decode(tt.raw, dec)
			require.NoError(t, err)
			assert.Equal(t, "hello", text)
		})
	}
}

func TestNewDecoder_Unknown(t *testing.T) {
	_, err := NewDecoder("klingon-8")
	assert.ErrorContains(t, err, `unknown encoding "klingon-8"`)
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\n\nb\n")
	want := []string{"a\r", "", "b", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitLines() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLinesInFile_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server3005.log")
	require.NoError(t, os.WriteFile(path, encodeUTF16LE("start\r\nError: Cannot find module 'x'\r\n"), 0644))

	lines, err := ReadLinesInFile(filesystem.DefaultFS{}, path, DefaultEncoding)
	require.NoError(t, err)
	assert.Equal(t, []string{"start\r", "Error: Cannot find module 'x'\r", ""}, lines)
}

func TestReadLinesInFile_BadEncodingDoesNotOpen(t *testing.T) {
	fsys := &MockFilesystem{files: map[string][]byte{"server.log": nil}}

	_, err := ReadLinesInFile(fsys, "server.log", "nope")
	require.Error(t, err)
	assert.Empty(t, fsys.opened)
}
