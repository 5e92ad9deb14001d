package frame

import "image"

// sharpen applies a 3x3 unsharp kernel:
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// Edge pixels are copied unchanged. Rasterized PDF text benefits noticeably;
// photographic slides are left close to the original.
func sharpen(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	copy(dst.Pix, src.Pix)

	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			for ch := 0; ch < 3; ch++ {
				center := int(src.Pix[src.PixOffset(x, y)+ch])
				up := int(src.Pix[src.PixOffset(x, y-1)+ch])
				down := int(src.Pix[src.PixOffset(x, y+1)+ch])
				left := int(src.Pix[src.PixOffset(x-1, y)+ch])
				right := int(src.Pix[src.PixOffset(x+1, y)+ch])

				v := 5*center - up - down - left - right
				dst.Pix[dst.PixOffset(x, y)+ch] = clamp8(v)
			}
			dst.Pix[dst.PixOffset(x, y)+3] = src.Pix[src.PixOffset(x, y)+3]
		}
	}
	return dst
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
