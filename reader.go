package cpio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
)

// DetectFormat inspects the magic token at the start of archive and
// returns the header encoding in use. It returns ErrUnknownMagic if
// the prefix matches no known encoding or is too short to tell.
func DetectFormat(archive []byte) (Format, error) {
	f, _, err := detect(archive)
	return f, err
}

// detect additionally reports the word byte order for OldBinary
// archives, taken from whichever arrangement of the 2-byte magic
// matches; the host's own byte order is never consulted.
func detect(archive []byte) (Format, binary.ByteOrder, error) {
	if len(archive) >= 6 {
		switch string(archive[:6]) {
		case magicODC:
			return PortableASCII, nil, nil
		case magicNewASCII:
			return NewASCII, nil, nil
		case magicNewCRC:
			return NewCRC, nil, nil
		}
	}
	if len(archive) >= 2 {
		if binary.BigEndian.Uint16(archive) == binaryMagic {
			return OldBinary, binary.BigEndian, nil
		}
		if binary.LittleEndian.Uint16(archive) == binaryMagic {
			return OldBinary, binary.LittleEndian, nil
		}
	}
	return 0, nil, ErrUnknownMagic
}

// slicer is a cursor over the archive buffer with a sticky error.
// Every take is bounds-checked; once an error is recorded, further
// takes return zero values and the error survives to be inspected
// after a run of field reads.
type slicer struct {
	buf []byte
	off int
	err error
}

// take consumes the next n bytes and returns them as a view into the
// buffer.
func (s *slicer) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if n < 0 || n > len(s.buf)-s.off {
		s.err = ErrUnexpectedEOF
		return nil
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b
}

// skipPad advances over up to n padding bytes, stopping at the end of
// the buffer: archives are often truncated right after their final
// content bytes, and padding carries no data.
func (s *slicer) skipPad(n int) {
	if s.err != nil {
		return
	}
	if n > len(s.buf)-s.off {
		s.off = len(s.buf)
	} else {
		s.off += n
	}
}

// align advances to the next n-byte boundary measured from start.
func (s *slicer) align(start, n int) {
	s.skipPad((n - (s.off-start)%n) % n)
}

// octal consumes an n-digit ASCII octal field. Every position must
// hold a valid digit.
func (s *slicer) octal(field string, n int) uint64 {
	b := s.take(n)
	if s.err != nil {
		return 0
	}
	var v uint64
	for _, c := range b {
		if c < '0' || c > '7' {
			s.err = badDigit(field, c)
			return 0
		}
		v = v<<3 | uint64(c-'0')
	}
	return v
}

// hex consumes an 8-digit ASCII hexadecimal field. Every position
// must hold a valid digit.
func (s *slicer) hex(field string) uint32 {
	b := s.take(8)
	if s.err != nil {
		return 0
	}
	var v uint32
	for _, c := range b {
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			s.err = badDigit(field, c)
			return 0
		}
		v = v<<4 | d
	}
	return v
}

func badDigit(field string, c byte) error {
	return &FieldError{Field: field, Err: fmt.Errorf("invalid digit %q", c)}
}

// readName consumes the entry's name field and strips the trailing
// NUL. On disk the name length includes the NUL; the exposed name
// excludes it.
func (s *slicer) readName(namesize int) []byte {
	if s.err != nil {
		return nil
	}
	if namesize == 0 {
		s.err = &FieldError{Field: "namesize", Err: errors.New("name length is zero")}
		return nil
	}
	b := s.take(namesize)
	if s.err != nil {
		return nil
	}
	if b[namesize-1] != 0 {
		s.err = &FieldError{Field: "name", Err: errors.New("name is not NUL-terminated")}
		return nil
	}
	return b[:namesize-1]
}

// decodeBinary decodes one old binary entry starting at off,
// returning the entry and the offset of the next header. The header
// is thirteen 16-bit words in the archive's stored byte order; mtime
// and filesize are 32-bit values stored as two words with the most
// significant word first, whatever the byte order within each word.
// The name and content regions are each padded to an even length.
func decodeBinary(buf []byte, off int, order binary.ByteOrder) (*Entry, int, error) {
	s := slicer{buf: buf, off: off}
	hdr := s.take(binaryHeaderSize)
	if s.err != nil {
		return nil, 0, s.err
	}
	if order.Uint16(hdr[0:2]) != binaryMagic {
		return nil, 0, &FieldError{Field: "magic", Err: errors.New("not an old binary header")}
	}
	word := func(i int) uint32 { return uint32(order.Uint16(hdr[i : i+2])) }
	e := &Entry{
		Format: OldBinary,
		Dev:    word(2),
		Ino:    word(4),
		Mode:   Mode(word(6)),
		UID:    word(8),
		GID:    word(10),
		NLink:  word(12),
		RDev:   word(14),
		MTime:  uint64(word(16))<<16 | uint64(word(18)),
	}
	namesize := int(word(20))
	filesize := int(word(22))<<16 | int(word(24))
	e.name = s.readName(namesize)
	s.skipPad(namesize % 2)
	e.data = s.take(filesize)
	s.skipPad(filesize % 2)
	if s.err != nil {
		return nil, 0, s.err
	}
	return e, s.off, nil
}

// decodeODC decodes one portable ASCII entry starting at off. All
// fields are 6-digit octal except mtime and filesize, which are 11
// digits. The format has no padding.
func decodeODC(buf []byte, off int) (*Entry, int, error) {
	s := slicer{buf: buf, off: off}
	if magic := s.take(6); s.err == nil && string(magic) != magicODC {
		return nil, 0, &FieldError{Field: "magic", Err: errors.New("not a portable ASCII header")}
	}
	e := &Entry{
		Format: PortableASCII,
		Dev:    uint32(s.octal("dev", 6)),
		Ino:    uint32(s.octal("ino", 6)),
		Mode:   Mode(s.octal("mode", 6)),
		UID:    uint32(s.octal("uid", 6)),
		GID:    uint32(s.octal("gid", 6)),
		NLink:  uint32(s.octal("nlink", 6)),
		RDev:   uint32(s.octal("rdev", 6)),
		MTime:  s.octal("mtime", 11),
	}
	namesize := int(s.octal("namesize", 6))
	filesize := int(s.octal("filesize", 11))
	if s.err != nil {
		return nil, 0, s.err
	}
	e.name = s.readName(namesize)
	e.data = s.take(filesize)
	if s.err != nil {
		return nil, 0, s.err
	}
	return e, s.off, nil
}

// decodeNewASCII decodes one new ASCII or new CRC entry starting at
// off. All fields are 8-digit hexadecimal. The name and content
// regions are each padded to a 4-byte boundary measured from the
// start of the header. The checksum field is decoded but not
// verified.
func decodeNewASCII(buf []byte, off int, format Format) (*Entry, int, error) {
	want := magicNewASCII
	if format == NewCRC {
		want = magicNewCRC
	}
	s := slicer{buf: buf, off: off}
	if magic := s.take(6); s.err == nil && string(magic) != want {
		return nil, 0, &FieldError{Field: "magic", Err: errors.New("not a " + format.String() + " header")}
	}
	e := &Entry{Format: format}
	e.Ino = s.hex("ino")
	e.Mode = Mode(s.hex("mode"))
	e.UID = s.hex("uid")
	e.GID = s.hex("gid")
	e.NLink = s.hex("nlink")
	e.MTime = uint64(s.hex("mtime"))
	filesize := int(s.hex("filesize"))
	e.DevMajor = s.hex("devmajor")
	e.DevMinor = s.hex("devminor")
	e.RDevMajor = s.hex("rdevmajor")
	e.RDevMinor = s.hex("rdevminor")
	namesize := int(s.hex("namesize"))
	e.Checksum = s.hex("check")
	if s.err != nil {
		return nil, 0, s.err
	}
	e.name = s.readName(namesize)
	s.align(off, 4)
	e.data = s.take(filesize)
	s.align(off, 4)
	if s.err != nil {
		return nil, 0, s.err
	}
	return e, s.off, nil
}

// Iter iterates over the entries of an in-memory cpio archive. It
// only moves forward; construct a fresh Iter over the same buffer to
// start again. The buffer is never modified or copied, and entries
// reference it directly.
//
// Example:
//
//	it := cpio.NewIter(buf)
//	for it.Next() {
//		e := it.Entry()
//		fmt.Printf("%s: %d bytes\n", e.Name(), e.Size())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
type Iter struct {
	buf     []byte
	off     int
	format  Format
	order   binary.ByteOrder // word order for OldBinary archives
	started bool
	done    bool
	entry   *Entry
	err     error
}

// NewIter returns an iterator over the entries of the archive in buf.
// Format detection runs lazily on first use, so constructing an
// iterator over an empty or unrecognized buffer does not fail until
// Next or Format is called.
func NewIter(archive []byte) *Iter {
	return &Iter{buf: archive}
}

func (it *Iter) start() {
	if it.started {
		return
	}
	it.started = true
	it.format, it.order, it.err = detect(it.buf)
	if it.err != nil {
		it.done = true
	}
}

// Next advances to the next entry, reporting whether one is
// available. It returns false at the trailer entry, at the end of the
// buffer, and on any decode error; call Err to tell a clean end from
// a failed one.
func (it *Iter) Next() bool {
	it.start()
	if it.done {
		return false
	}
	if it.off >= len(it.buf) {
		it.done = true
		it.entry = nil
		return false
	}
	var (
		e    *Entry
		next int
		err  error
	)
	switch it.format {
	case OldBinary:
		e, next, err = decodeBinary(it.buf, it.off, it.order)
	case PortableASCII:
		e, next, err = decodeODC(it.buf, it.off)
	default:
		e, next, err = decodeNewASCII(it.buf, it.off, it.format)
	}
	if err != nil {
		it.done = true
		it.entry = nil
		it.err = err
		return false
	}
	if string(e.name) == Trailer {
		it.done = true
		it.entry = nil
		return false
	}
	it.off = next
	it.entry = e
	return true
}

// Entry returns the entry read by the most recent successful call to
// Next.
func (it *Iter) Entry() *Entry { return it.entry }

// Err returns the error that ended iteration, or nil if the archive
// ended cleanly at its trailer or at the end of the buffer. A
// truncated archive looks the same as a complete one through Next
// alone; Err is how callers tell them apart.
func (it *Iter) Err() error { return it.err }

// Format returns the archive's header encoding. Detection runs on
// first use, whether through Format or Next.
func (it *Iter) Format() (Format, error) {
	it.start()
	return it.format, it.err
}

// Entries returns the archive's entries as a sequence, in archive
// order, excluding the trailer. The sequence ends silently if the
// archive is malformed; use Iter directly when that distinction
// matters. Each range over the sequence restarts from the beginning
// of the archive.
func Entries(archive []byte) iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		it := NewIter(archive)
		for it.Next() {
			if !yield(it.Entry()) {
				return
			}
		}
	}
}
