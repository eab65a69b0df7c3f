package main

import (
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func resetConvertFlags() {
	convertOutput = ""
	convertAuthor = ""
	convertSeed = 0
	convertDefaults = ""
}

func TestConvertCommandWritesSutFile(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "dot.png")
	writeTestPNG(t, imgPath, 64, 64)

	outPath := filepath.Join(dir, "out.sut")
	convertOutput = outPath
	convertSeed = 1
	defer resetConvertFlags()

	convertCmd.SetArgs(nil)
	err := convertCmd.RunE(convertCmd, []string{"Pack", imgPath})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "SQLite format 3\x00", string(out[0:16]))
}

func TestConvertCommandDefaultsOutputName(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "dot.png")
	writeTestPNG(t, imgPath, 64, 64)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	convertSeed = 1
	defer resetConvertFlags()

	err = convertCmd.RunE(convertCmd, []string{"MyPack", imgPath})
	require.NoError(t, err)

	out, err := os.ReadFile("MyPack.sut")
	require.NoError(t, err)
	require.Equal(t, "SQLite format 3\x00", string(out[0:16]))
}

func TestConvertCommandSanitizesDefaultOutputName(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "dot.png")
	writeTestPNG(t, imgPath, 64, 64)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	convertSeed = 1
	defer resetConvertFlags()

	err = convertCmd.RunE(convertCmd, []string{"My Pack", imgPath})
	require.NoError(t, err)

	out, err := os.ReadFile("My_Pack.sut")
	require.NoError(t, err)
	require.Equal(t, "SQLite format 3\x00", string(out[0:16]))
}

func TestConvertCommandSuffixesBrushNameWithPython(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "dot.png")
	writeTestPNG(t, imgPath, 64, 64)

	outPath := filepath.Join(dir, "out.sut")
	convertOutput = outPath
	convertSeed = 1
	defer resetConvertFlags()

	err := convertCmd.RunE(convertCmd, []string{"Pack", imgPath})
	require.NoError(t, err)

	db, err := sql.Open("sqlite", outPath)
	require.NoError(t, err)
	defer db.Close()

	var brushName string
	require.NoError(t, db.QueryRow(`SELECT NodeName FROM Node WHERE NodeName != ? LIMIT 1`, "Pack").Scan(&brushName))
	require.Equal(t, "dot (Python)", brushName)
}

func TestConvertCommandRejectsUnreadableImage(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	defer resetConvertFlags()

	err := convertCmd.RunE(convertCmd, []string{"Pack", filepath.Join(dir, "missing.png")})
	require.Error(t, err)
}

func TestConvertCommandAppliesHCLDefaults(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "dot.png")
	writeTestPNG(t, imgPath, 64, 64)

	defaultsPath := filepath.Join(dir, "defaults.hcl")
	require.NoError(t, os.WriteFile(defaultsPath, []byte(`size = 75
opacity = 80
`), 0o644))

	outPath := filepath.Join(dir, "out.sut")
	convertOutput = outPath
	convertDefaults = defaultsPath
	convertSeed = 1
	defer resetConvertFlags()

	err := convertCmd.RunE(convertCmd, []string{"Pack", imgPath})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "SQLite format 3\x00", string(out[0:16]))

	db, err := sql.Open("sqlite", outPath)
	require.NoError(t, err)
	defer db.Close()

	var brushSize float64
	var opacity int
	require.NoError(t, db.QueryRow(`SELECT BrushSize, Opacity FROM Variant LIMIT 1`).Scan(&brushSize, &opacity))
	require.Equal(t, float64(75), brushSize)
	require.Equal(t, 80, opacity)
}
