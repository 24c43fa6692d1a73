package cynes

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FrameImage copies a frame view (as returned by Step) into an
// image.RGBA. The result owns its pixels and stays valid across
// subsequent steps.
func FrameImage(frame []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			src := (y*FrameWidth + x) * 3
			dst := y*img.Stride + x*4
			img.Pix[dst] = frame[src]
			img.Pix[dst+1] = frame[src+1]
			img.Pix[dst+2] = frame[src+2]
			img.Pix[dst+3] = 0xFF
		}
	}
	return img
}

// ScaleFrame resamples a frame view to the given size using
// nearest-neighbor interpolation. Downscaling observations is the usual
// first step for reinforcement-learning consumers; nearest-neighbor keeps
// the result deterministic and palette-exact.
func ScaleFrame(frame []byte, width, height int) *image.RGBA {
	src := FrameImage(frame)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
