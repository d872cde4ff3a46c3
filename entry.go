package cpio

import "io/fs"

// Mode describes an entry's type and permission bits, in the layout
// shared by all four cpio header encodings: a 4-bit type field,
// setuid/setgid/sticky bits, and three permission triads with the
// user triad the most significant.
type Mode uint32

const (
	TypeFifo    Mode = 0o010000 // named pipe (FIFO)
	TypeChar    Mode = 0o020000 // character device
	TypeDir     Mode = 0o040000 // directory
	TypeBlock   Mode = 0o060000 // block device
	TypeRegular Mode = 0o100000 // regular file
	TypeSymlink Mode = 0o120000 // symbolic link
	TypeSocket  Mode = 0o140000 // socket

	ModeSetuid Mode = 0o004000
	ModeSetgid Mode = 0o002000
	ModeSticky Mode = 0o001000

	ModeUserRead   Mode = 0o400
	ModeUserWrite  Mode = 0o200
	ModeUserExec   Mode = 0o100
	ModeGroupRead  Mode = 0o040
	ModeGroupWrite Mode = 0o020
	ModeGroupExec  Mode = 0o010
	ModeOtherRead  Mode = 0o004
	ModeOtherWrite Mode = 0o002
	ModeOtherExec  Mode = 0o001

	// ModeType masks the type bits.
	ModeType Mode = 0o170000

	// ModePerm masks the permission bits.
	ModePerm Mode = 0o000777
)

// Type returns the type bits of m.
func (m Mode) Type() Mode { return m & ModeType }

// Perm returns the permission bits of m.
func (m Mode) Perm() Mode { return m & ModePerm }

func (m Mode) IsRegular() bool     { return m.Type() == TypeRegular }
func (m Mode) IsDir() bool         { return m.Type() == TypeDir }
func (m Mode) IsSymlink() bool     { return m.Type() == TypeSymlink }
func (m Mode) IsCharDevice() bool  { return m.Type() == TypeChar }
func (m Mode) IsBlockDevice() bool { return m.Type() == TypeBlock }
func (m Mode) IsFifo() bool        { return m.Type() == TypeFifo }
func (m Mode) IsSocket() bool      { return m.Type() == TypeSocket }

// FileMode returns m converted to an io/fs.FileMode.
func (m Mode) FileMode() fs.FileMode {
	fm := fs.FileMode(m.Perm())
	switch m.Type() {
	case TypeFifo:
		fm |= fs.ModeNamedPipe
	case TypeChar:
		fm |= fs.ModeDevice | fs.ModeCharDevice
	case TypeDir:
		fm |= fs.ModeDir
	case TypeBlock:
		fm |= fs.ModeDevice
	case TypeSymlink:
		fm |= fs.ModeSymlink
	case TypeSocket:
		fm |= fs.ModeSocket
	}
	if m&ModeSetuid != 0 {
		fm |= fs.ModeSetuid
	}
	if m&ModeSetgid != 0 {
		fm |= fs.ModeSetgid
	}
	if m&ModeSticky != 0 {
		fm |= fs.ModeSticky
	}
	return fm
}

// Entry is one file in a cpio archive: the decoded header fields plus
// views of the file's name and contents.
//
// Which device fields are populated depends on the format. OldBinary
// and PortableASCII store a single packed device number each for the
// containing and the associated device (Dev, RDev); NewASCII and
// NewCRC store the major and minor numbers separately (DevMajor,
// DevMinor, RDevMajor, RDevMinor). Checksum is carried by the NewCRC
// header only and is not verified.
type Entry struct {
	Format Format

	Dev       uint32
	Ino       uint32
	Mode      Mode
	UID       uint32
	GID       uint32
	NLink     uint32
	RDev      uint32
	MTime     uint64
	DevMajor  uint32
	DevMinor  uint32
	RDevMajor uint32
	RDevMinor uint32
	Checksum  uint32

	name []byte
	data []byte
}

// NameBytes returns the entry's file name without its terminating
// NUL, as a view into the archive buffer.
func (e *Entry) NameBytes() []byte { return e.name }

// Name returns the entry's file name as a string. Unlike NameBytes,
// it allocates.
func (e *Entry) Name() string { return string(e.name) }

// Data returns the entry's file contents as a view into the archive
// buffer; it stays valid for as long as the buffer itself. For a
// symbolic link the contents are the link target.
func (e *Entry) Data() []byte { return e.data }

// Size returns the length of the entry's file contents in bytes.
func (e *Entry) Size() int { return len(e.data) }
