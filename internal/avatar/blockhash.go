package avatar

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
)

// Brightness of a fully transparent pixel, which renders as white.
const transparentValue = 765

// blockMeanHash splits img into a size x size grid of blocks and sets the
// bit of every block brighter than the median block of its quarter of the
// grid. Bits are packed big-endian into 64-bit words, row by row.
//
// Block edges rarely fall on pixel edges, so partially covered pixels count
// in proportion to the covered area. Areas are measured on a grid where
// each pixel is size units wide and each block is w units wide, which keeps
// every sum an integer. An image and any integer nearest-neighbour rescale
// of it produce the same bits.
func blockMeanHash(img image.Image, size int) ([]uint64, error) {
	if size <= 0 || (size*size)%64 != 0 {
		return nil, fmt.Errorf("invalid grid size %d: size*size must be a positive multiple of 64", size)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("image has no pixels")
	}

	blocks := make([]int64, size*size)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := brightness(img.At(b.Min.X+x, b.Min.Y+y))
			for by := y * size / h; by < size && by*h < (y+1)*size; by++ {
				oy := overlap(y*size, (y+1)*size, by*h, (by+1)*h)
				for bx := x * size / w; bx < size && bx*w < (x+1)*size; bx++ {
					ox := overlap(x*size, (x+1)*size, bx*w, (bx+1)*w)
					blocks[by*size+bx] += v * ox * oy
				}
			}
		}
	}

	// Twice the value of a half-bright block, in the same units as blocks.
	halfBright := int64(w) * int64(h) * 768

	words := make([]uint64, len(blocks)/64)
	band := len(blocks) / 4
	for start := 0; start < len(blocks); start += band {
		median2 := doubledMedian(blocks[start : start+band])
		for i := start; i < start+band; i++ {
			v2 := 2 * blocks[i]
			if v2 > median2 || (v2 == median2 && median2 > halfBright) {
				words[i/64] |= 1 << (63 - uint(i%64))
			}
		}
	}
	return words, nil
}

// doubledMedian returns twice the median of values so that the mean of the
// two middle elements stays an integer.
func doubledMedian(values []int64) int64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return sorted[mid-1] + sorted[mid]
	}
	return 2 * sorted[mid]
}

// overlap returns the length shared by [a0, a1) and [b0, b1).
func overlap(a0, a1, b0, b1 int) int64 {
	return int64(min(a1, b1) - max(a0, b0))
}

func brightness(c color.Color) int64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return transparentValue
	}
	return int64(n.R) + int64(n.G) + int64(n.B)
}
