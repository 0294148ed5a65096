package photoviewer

// FitSize returns the largest size with the image's aspect ratio that fits
// inside the available area, touching it on at least one side. Degenerate
// inputs yield a zero size.
func FitSize(availW, availH, imgW, imgH float64) (w, h float64) {
	if availW <= 0 || availH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	frameAR := availH / availW
	imageAR := imgH / imgW
	if frameAR > imageAR {
		return availW, availW * imageAR
	}
	return availH / imageAR, availH
}
