/*
Package ico decodes the Windows ICO/CUR container: the 6-byte file header,
the 16-byte directory entries and the byte ranges of the embedded BMP-DIB or
PNG payloads.

Load validates the whole structure up front and either returns a complete
IconFile or the first error; it never panics on truncated or hostile input.
Image payloads are not copied, every ImageView aliases the buffer given to
Load, so that buffer must stay alive (and unmodified, unless aliasing is
wanted) for as long as the IconFile is used.

The directory fields at bytes 4..7 of an entry are color planes and bit count
for icons and the hotspot for cursors. They are kept raw in DirectoryEntry;
Planes, BitCount and Hotspot interpret them according to the file Kind.

Pixel decoding is delegated: DecodeImage hands PNG payloads to image/png and
DIB payloads to golang.org/x/image/bmp. Payload headers claiming sides outside
1..256 are rejected with ErrUnsupportedPayload before either codec allocates.
*/
package ico
