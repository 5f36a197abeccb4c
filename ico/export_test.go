package ico

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	icon := buildFile(Icon, encodePNG(t, 2, 2), dib32(1, 1, [4]byte{}))
	icon[6] = 0 // 256 wide
	f, err := Load(icon)
	require.NoError(t, err)

	name, err := f.FileName("app", 0)
	require.NoError(t, err)
	require.Equal(t, "app_icon256x16@32bit.png", name)

	name, err = f.FileName("app", 1)
	require.NoError(t, err)
	require.Equal(t, "app_icon16x16@32bit.bmp", name)

	cur := buildFile(Cursor, dib32(1, 1, [4]byte{}))
	binary.LittleEndian.PutUint16(cur[10:12], 4)
	binary.LittleEndian.PutUint16(cur[12:14], 7)
	f, err = Load(cur)
	require.NoError(t, err)

	name, err = f.FileName("arrow", 0)
	require.NoError(t, err)
	require.Equal(t, "arrow_cursor16x16@4_7.bmp", name)

	_, err = f.FileName("arrow", 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestExportBytes(t *testing.T) {
	pngData := encodePNG(t, 2, 2)
	f, err := Load(buildFile(Icon, pngData, dib32(16, 16, [4]byte{})))
	require.NoError(t, err)

	out, err := f.ExportBytes(0)
	require.NoError(t, err)
	require.Equal(t, pngData, out)

	out, err = f.ExportBytes(1)
	require.NoError(t, err)
	require.Equal(t, []byte("BM"), out[:2])
	require.Equal(t, uint32(16), binary.LittleEndian.Uint32(out[bitmapHeaderSize+8:]))

	_, err = f.ExportBytes(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestExtractToDir(t *testing.T) {
	pngData := encodePNG(t, 2, 2)
	f, err := Load(buildFile(Icon, pngData, pngData, dib32(16, 16, [4]byte{})))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := f.ExtractToDir(dir, "app")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "app_icon16x16@32bit.png"),
		filepath.Join(dir, "app_icon16x16@32bit-1.png"),
		filepath.Join(dir, "app_icon16x16@32bit.bmp"),
	}, paths)

	got, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	require.Equal(t, pngData, got)

	bmpFile, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	require.Equal(t, []byte("BM"), bmpFile[:2])
}

func TestExtractToDirFails(t *testing.T) {
	f, err := Load(vectorFile())
	require.NoError(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err = f.ExtractToDir(filepath.Join(blocker, "sub"), "x")
	require.ErrorIs(t, err, ErrCreateFile)
}
