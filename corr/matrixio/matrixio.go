// Package matrixio loads corr.Matrix values from JSON array-of-arrays
// documents or from grayscale/palette PNGs, the two input shapes a
// "small byte matrices" correlation tool plausibly consumes. PNG decoding
// mirrors the teacher's own use of the image/image-png stack
// (nes/ppu.go's image.RGBA frame buffer, integration/helloworld_test.go's
// png.Decode golden comparison) applied to matrix cells instead of frame
// pixels.
package matrixio

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hash-cad/eqcorr2d/corr"
)

// LoadJSON decodes a JSON array-of-arrays of small integers (0-255) into a
// corr.Matrix. It decodes into [][]int rather than [][]byte: encoding/json
// treats a []byte target as a base64 string, not a JSON array of numbers,
// so decoding straight into [][]byte fails on every well-formed matrix.
func LoadJSON(r io.Reader) (corr.Matrix, error) {
	var rows [][]int
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return corr.Matrix{}, fmt.Errorf("matrixio: decoding JSON matrix: %w", err)
	}
	bytes := make([][]byte, len(rows))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return corr.Matrix{}, fmt.Errorf("matrixio: row %d has %d cells, want %d", i, len(row), len(rows[0]))
		}
		brow := make([]byte, len(row))
		for j, v := range row {
			if v < 0 || v > 255 {
				return corr.Matrix{}, fmt.Errorf("matrixio: cell [%d][%d] = %d out of byte range", i, j, v)
			}
			brow[j] = byte(v)
		}
		bytes[i] = brow
	}
	return corr.NewMatrix(bytes), nil
}

// LoadJSONFile is LoadJSON over a file path.
func LoadJSONFile(path string) (corr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return corr.Matrix{}, fmt.Errorf("matrixio: opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadJSON(f)
}

// LoadPNG decodes a grayscale or palette-indexed PNG into a corr.Matrix: the
// cell at (row, col) is the image's gray or palette index value at that
// pixel, so index/value 0 carries the same don't-care meaning as the zero
// sentinel in §3 (mirroring the teacher's index-0-is-transparent
// compositing rule in nes/ppu.go's renderPixel: bgOpaque := bg != 0).
func LoadPNG(r io.Reader) (corr.Matrix, error) {
	img, err := png.Decode(r)
	if err != nil {
		return corr.Matrix{}, fmt.Errorf("matrixio: decoding PNG matrix: %w", err)
	}
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	rows := make([][]byte, h)
	for y := 0; y < h; y++ {
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			row[x] = cellValue(img, bounds.Min.X+x, bounds.Min.Y+y)
		}
		rows[y] = row
	}
	return corr.NewMatrix(rows), nil
}

// LoadPNGFile is LoadPNG over a file path.
func LoadPNGFile(path string) (corr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return corr.Matrix{}, fmt.Errorf("matrixio: opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadPNG(f)
}

func cellValue(img image.Image, x, y int) byte {
	if p, ok := img.(*image.Paletted); ok {
		return p.ColorIndexAt(x, y)
	}
	if g, ok := img.(*image.Gray); ok {
		return g.GrayAt(x, y).Y
	}
	r, _, _, _ := img.At(x, y).RGBA()
	return byte(r >> 8)
}

// LoadDir loads every *.json and *.png file directly inside dir, sorted by
// file name, as a matrix list — the on-disk shape of an A_list or B_list
// for the CLI's "compute" subcommand.
func LoadDir(dir string) ([]corr.Matrix, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("matrixio: reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".json", ".png":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	matrices := make([]corr.Matrix, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		var m corr.Matrix
		var err error
		if filepath.Ext(name) == ".png" {
			m, err = LoadPNGFile(path)
		} else {
			m, err = LoadJSONFile(path)
		}
		if err != nil {
			return nil, err
		}
		matrices = append(matrices, m)
	}
	return matrices, nil
}
