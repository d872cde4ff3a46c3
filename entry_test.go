package cpio

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModePredicates(t *testing.T) {
	for _, tc := range []struct {
		name string
		mode Mode
		want func(Mode) bool
	}{
		{"regular file", TypeRegular | 0o644, Mode.IsRegular},
		{"directory", TypeDir | 0o755, Mode.IsDir},
		{"symlink", TypeSymlink | 0o777, Mode.IsSymlink},
		{"character device", TypeChar | 0o620, Mode.IsCharDevice},
		{"block device", TypeBlock | 0o660, Mode.IsBlockDevice},
		{"fifo", TypeFifo | 0o600, Mode.IsFifo},
		{"socket", TypeSocket | 0o755, Mode.IsSocket},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want(tc.mode))
		})
	}

	assert.False(t, (TypeDir | 0o755).IsRegular())
	assert.False(t, (TypeRegular | 0o644).IsDir())
	assert.False(t, (TypeBlock | 0o660).IsCharDevice())
}

func TestModeFileMode(t *testing.T) {
	for _, tc := range []struct {
		name string
		mode Mode
		want fs.FileMode
	}{
		{"regular file", TypeRegular | 0o644, 0o644},
		{"directory", TypeDir | 0o755, fs.ModeDir | 0o755},
		{"symlink", TypeSymlink | 0o777, fs.ModeSymlink | 0o777},
		{"char device", TypeChar | 0o620, fs.ModeDevice | fs.ModeCharDevice | 0o620},
		{"block device", TypeBlock | 0o660, fs.ModeDevice | 0o660},
		{"fifo", TypeFifo | 0o600, fs.ModeNamedPipe | 0o600},
		{"socket", TypeSocket | 0o755, fs.ModeSocket | 0o755},
		{"setuid binary", TypeRegular | ModeSetuid | 0o755, fs.ModeSetuid | 0o755},
		{"sticky dir", TypeDir | ModeSticky | 0o777, fs.ModeDir | fs.ModeSticky | 0o777},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.mode.FileMode())
		})
	}
}

func TestModeMasks(t *testing.T) {
	m := TypeRegular | ModeSetuid | 0o751
	assert.Equal(t, TypeRegular, m.Type())
	assert.Equal(t, Mode(0o751), m.Perm())
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "old binary", OldBinary.String())
	assert.Equal(t, "portable ASCII", PortableASCII.String())
	assert.Equal(t, "new ASCII", NewASCII.String())
	assert.Equal(t, "new CRC", NewCRC.String())
	assert.Equal(t, "unknown", Format(42).String())
}
