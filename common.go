package cpio

// Format identifies which of the cpio header encodings an archive
// uses. It is determined by the magic token of the first header and
// applies to every entry that follows.
type Format int

const (
	// OldBinary is the original binary format: packed 16-bit header
	// fields in the byte order of the machine that wrote the archive.
	OldBinary Format = iota

	// PortableASCII is the POSIX.1 "odc" format, with fixed-width
	// octal header fields.
	PortableASCII

	// NewASCII is the SVR4 "newc" format, with fixed-width
	// hexadecimal header fields.
	NewASCII

	// NewCRC is the SVR4 "crc" format: identical to NewASCII except
	// that the header carries a simple additive checksum of the file
	// contents. The checksum is exposed but never verified.
	NewCRC
)

func (f Format) String() string {
	switch f {
	case OldBinary:
		return "old binary"
	case PortableASCII:
		return "portable ASCII"
	case NewASCII:
		return "new ASCII"
	case NewCRC:
		return "new CRC"
	}
	return "unknown"
}

// Trailer is the name of the sentinel entry that marks the end of the
// archive. It is never yielded during iteration.
const Trailer = "TRAILER!!!"

const (
	// binaryMagic is the old binary magic, a 16-bit value in the byte
	// order of the writing machine.
	binaryMagic = 0o070707

	magicODC      = "070707"
	magicNewASCII = "070701"
	magicNewCRC   = "070702"
)

// binaryHeaderSize is the size of an old binary header, magic
// included. The ASCII headers are 76 (odc) and 110 (newc/crc) bytes
// but are decoded field by field rather than as a block.
const binaryHeaderSize = 26
