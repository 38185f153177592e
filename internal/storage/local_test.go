package storage

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Local {
	s, err := NewLocal(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }
	return s
}

func TestSaveNaming(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		original string
		ext      string
	}{
		{"permit.PDF", "pdf"},
		{"scan.jpeg", "jpeg"},
		{"noext", "dat"},
		{"weird.ex-e", "dat"},
		{"long.abcdefghi", "dat"},
	}
	for _, tc := range cases {
		name, err := s.Save("permit", tc.original, strings.NewReader("data"))
		require.NoError(t, err, tc.original)
		assert.Regexp(t, regexp.MustCompile(`^permit_20240301123045_[0-9a-f]{8}\.`+tc.ext+`$`), name)

		b, err := os.ReadFile(filepath.Join(s.dir, name))
		require.NoError(t, err)
		assert.Equal(t, "data", string(b))
	}
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)
	name, err := s.Save("dti", "dti.png", strings.NewReader("png"))
	require.NoError(t, err)

	f, err := s.Open(name)
	require.NoError(t, err)
	defer f.Close()
	b, _ := io.ReadAll(f)
	assert.Equal(t, "png", string(b))

	_, err = s.Open("missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, bad := range []string{"", ".", "..", "../etc/passwd", `a\b`, "a/b"} {
		_, err = s.Open(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	name, err := s.Save("spa", "spa.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	_, err = s.Open(name)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Remove(name))
	assert.ErrorIs(t, s.Remove("../x"), ErrInvalidName)
}
