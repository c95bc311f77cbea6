package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// WriteGIF encodes frames as a looping animated GIF with delay between
// frames. Frames are dithered onto the Plan 9 palette.
func WriteGIF(w io.Writer, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to animate")
	}
	// GIF delays are in hundredths of a second.
	centis := int(delay / (10 * time.Millisecond))
	if centis < 1 {
		centis = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, img := range frames {
		b := img.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, img, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, centis)
	}
	return gif.EncodeAll(w, anim)
}
