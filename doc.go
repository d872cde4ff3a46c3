/*
Package cpio implements read access to archives in the cpio format.

All four classic header encodings are supported: the old binary
format, the portable ASCII ("odc") format, and the new ASCII and new
CRC ("newc"/"crc") formats. The archive is supplied as an in-memory
byte slice, and each entry's name and file contents are exposed as
sub-slices of that buffer; the package never copies archive bytes.

References:

	https://www.freebsd.org/cgi/man.cgi?query=cpio&sektion=5
*/
package cpio
