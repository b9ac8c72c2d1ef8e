package geometry

import (
	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// Point is a position in either preview-pixel space or PDF-point space.
// Both spaces use a top-left origin with Y increasing downward; the flip to
// PDF's bottom-left origin happens only at draw time (see DrawY).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size holds the dimensions of a preview element (pixels) or a PDF page
// (points).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPDFSpace maps a point captured relative to the top-left of a rendered
// preview element into the PDF page's point space. Both axes scale
// independently; the caller guarantees the preview is displayed at the page's
// native aspect ratio.
func ToPDFSpace(p Point, preview, page Size) (Point, error) {
	if preview.Width <= 0 || preview.Height <= 0 {
		return Point{}, apperr.Newf(apperr.KindPrecondition,
			"preview dimensions must be positive, got %gx%g", preview.Width, preview.Height)
	}
	return Point{
		X: p.X / preview.Width * page.Width,
		Y: p.Y / preview.Height * page.Height,
	}, nil
}

// ToScreenSpace is the inverse of ToPDFSpace, used to render already-placed
// signatures onto a preview of possibly different size than when they were
// placed.
func ToScreenSpace(p Point, preview, page Size) (Point, error) {
	if preview.Width <= 0 || preview.Height <= 0 {
		return Point{}, apperr.Newf(apperr.KindPrecondition,
			"preview dimensions must be positive, got %gx%g", preview.Width, preview.Height)
	}
	if page.Width <= 0 || page.Height <= 0 {
		return Point{}, apperr.Newf(apperr.KindPrecondition,
			"page dimensions must be positive, got %gx%g", page.Width, page.Height)
	}
	return Point{
		X: p.X / page.Width * preview.Width,
		Y: p.Y / page.Height * preview.Height,
	}, nil
}

// DrawY converts a stored top-left-origin Y into the bottom-left-origin
// coordinate PDF drawing expects: pageHeight - y - fontSize.
func DrawY(pageHeight, y, fontSize float64) float64 {
	return pageHeight - y - fontSize
}
