package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/winicon/icodec/ico"
)

func writeIcon(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	var payload bytes.Buffer
	require.NoError(t, png.Encode(&payload, img))

	h := ico.FileHeader{Kind: ico.Icon, Count: 1}
	e := ico.DirectoryEntry{
		Width:      4,
		Height:     4,
		Field5:     1,
		Field6:     32,
		DataSize:   uint32(payload.Len()),
		DataOffset: uint32(h.DirectoryEnd()),
	}
	data := append(h.Bytes(), e.Bytes()...)
	data = append(data, payload.Bytes()...)

	path := filepath.Join(t.TempDir(), "app.ico")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListJSON(t *testing.T) {
	path := writeIcon(t)

	out, _, err := run(t, "list", "--json", "--data-url", path)
	require.NoError(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)

	r := reports[0]
	require.Equal(t, "icon", r.Kind)
	require.Equal(t, 1, r.Count)
	require.Len(t, r.Images, 1)

	im := r.Images[0]
	require.Equal(t, 4, im.Width)
	require.Equal(t, "png", im.Format)
	require.Equal(t, "image/png", im.MIME)
	require.NotNil(t, im.BitCount)
	require.Equal(t, uint16(32), *im.BitCount)
	require.Nil(t, im.HotspotX)
	require.Len(t, im.SHA256, 64)
	require.NotNil(t, im.Payload)
	require.Equal(t, 4, im.Payload.Height)
	require.Equal(t, []string{"IHDR", "IDAT", "IEND"}, im.Chunks)
	require.True(t, strings.HasPrefix(im.DataURL, "data:image/png;base64,"), im.DataURL)
}

func TestListText(t *testing.T) {
	path := writeIcon(t)

	out, _, err := run(t, "ls", path)
	require.NoError(t, err)
	require.Contains(t, out, "icon, 1 image(s)")
	require.Contains(t, out, "4x4")
	require.Contains(t, out, "32bit")
}

func TestListErrors(t *testing.T) {
	_, _, err := run(t, "list", filepath.Join(t.TempDir(), "missing.ico"))
	require.ErrorIs(t, err, ico.ErrOpenFile)

	_, _, err = run(t, "list", "--max-size", "10", writeIcon(t))
	require.ErrorIs(t, err, ico.ErrBufferTooLarge)

	_, _, err = run(t, "list")
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	path := writeIcon(t)
	dir := t.TempDir()

	out, _, err := run(t, "extract", "-o", dir, path)
	require.NoError(t, err)

	want := filepath.Join(dir, "app_icon4x4@32bit.png")
	require.Equal(t, want+"\n", out)
	require.FileExists(t, want)
}

func TestDecode(t *testing.T) {
	path := writeIcon(t)
	target := filepath.Join(t.TempDir(), "out.png")

	_, _, err := run(t, "decode", "-o", target, path)
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	_, _, err = run(t, "decode", "-i", "3", path)
	require.ErrorIs(t, err, ico.ErrIndexOutOfRange)
}

func TestDecodeHugeDIB(t *testing.T) {
	dib := make([]byte, 40+4)
	binary.LittleEndian.PutUint32(dib[0:4], 40)
	binary.LittleEndian.PutUint32(dib[4:8], 0x7fffffff)
	binary.LittleEndian.PutUint32(dib[8:12], 0x7fffffff)
	binary.LittleEndian.PutUint16(dib[12:14], 1)
	binary.LittleEndian.PutUint16(dib[14:16], 32)

	h := ico.FileHeader{Kind: ico.Icon, Count: 1}
	e := ico.DirectoryEntry{DataSize: uint32(len(dib)), DataOffset: uint32(h.DirectoryEnd())}
	data := append(h.Bytes(), e.Bytes()...)
	data = append(data, dib...)

	path := filepath.Join(t.TempDir(), "huge.ico")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, _, err := run(t, "decode", "-o", filepath.Join(t.TempDir(), "out.png"), path)
	require.ErrorIs(t, err, ico.ErrUnsupportedPayload)
}
