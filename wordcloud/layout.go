package wordcloud

import "math/rand"

// gridStep is the stride, in pixels, between candidate positions.
const gridStep = 2

// occupancy tracks which canvas pixels are taken, using an integral image so
// any rectangle can be tested in constant time.
type occupancy struct {
	width, height int
	taken         []bool
	integral      []int32
}

func newOccupancy(width, height int) *occupancy {
	return &occupancy{
		width:    width,
		height:   height,
		taken:    make([]bool, width*height),
		integral: make([]int32, (width+1)*(height+1)),
	}
}

// sum returns the number of taken pixels in [x, x+w) x [y, y+h).
func (o *occupancy) sum(x, y, w, h int) int32 {
	stride := o.width + 1
	return o.integral[(y+h)*stride+x+w] -
		o.integral[y*stride+x+w] -
		o.integral[(y+h)*stride+x] +
		o.integral[y*stride+x]
}

// find picks a free w x h position at random among all free grid positions.
func (o *occupancy) find(w, h int, rng *rand.Rand) (int, int, bool) {
	if w > o.width || h > o.height {
		return 0, 0, false
	}

	hits := 0
	for y := 0; y+h <= o.height; y += gridStep {
		for x := 0; x+w <= o.width; x += gridStep {
			if o.sum(x, y, w, h) == 0 {
				hits++
			}
		}
	}
	if hits == 0 {
		return 0, 0, false
	}

	goal := rng.Intn(hits)
	for y := 0; y+h <= o.height; y += gridStep {
		for x := 0; x+w <= o.width; x += gridStep {
			if o.sum(x, y, w, h) != 0 {
				continue
			}
			if goal == 0 {
				return x, y, true
			}
			goal--
		}
	}
	return 0, 0, false
}

// mark takes the rectangle and rebuilds the integral image.
func (o *occupancy) mark(x, y, w, h int) {
	for yy := y; yy < y+h && yy < o.height; yy++ {
		for xx := x; xx < x+w && xx < o.width; xx++ {
			o.taken[yy*o.width+xx] = true
		}
	}

	stride := o.width + 1
	for yy := 0; yy < o.height; yy++ {
		var row int32
		for xx := 0; xx < o.width; xx++ {
			if o.taken[yy*o.width+xx] {
				row++
			}
			o.integral[(yy+1)*stride+xx+1] = o.integral[yy*stride+xx+1] + row
		}
	}
}
