// Package workload provides the sample operations measured by the blockprof
// command.
//
// Every [Op] consumes an input buffer and reports how many bytes it
// processed, so profilers can derive throughput.
package workload

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"

	"golang.org/x/image/draw"
)

// scaleWidth is the pixel width used when interpreting input as an image.
const scaleWidth = 256

// ErrUnknownWorkload indicates an unrecognized workload name.
var ErrUnknownWorkload = errors.New("unknown workload")

// Op processes data and returns the number of bytes it touched.
type Op func(data []byte) uint64

var registry = map[string]Op{
	"checksum": func(data []byte) uint64 {
		Checksum(data)
		return uint64(len(data))
	},
	"copy": func(data []byte) uint64 {
		dst := make([]byte, len(data))
		return uint64(copy(dst, data))
	},
	"scale": Scale,
}

// Names returns the sorted names of all registered workloads.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns the workload registered under name.
func Lookup(name string) (Op, error) {
	op, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownWorkload, name, Names())
	}

	return op, nil
}

// Checksum returns the sum of all bytes in data.
func Checksum(data []byte) uint64 {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}

	return sum
}

// Image interprets data as RGBA pixel rows of a fixed width. Trailing bytes
// that do not fill a whole row are ignored. It returns nil when data does not
// contain a single row.
func Image(data []byte) *image.RGBA {
	stride := scaleWidth * 4

	rows := len(data) / stride
	if rows == 0 {
		return nil
	}

	return &image.RGBA{
		Pix:    data[:rows*stride],
		Stride: stride,
		Rect:   image.Rect(0, 0, scaleWidth, rows),
	}
}

// Scale downsamples data, viewed through [Image], to half its size with
// bilinear filtering. It returns the number of source bytes read.
func Scale(data []byte) uint64 {
	src := Image(data)
	if src == nil {
		return 0
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(b.Dx()/2, 1), max(b.Dy()/2, 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return uint64(len(src.Pix))
}
