package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

func TestToPDFSpace(t *testing.T) {
	preview := Size{Width: 400, Height: 600}
	page := Size{Width: 595, Height: 842}

	p, err := ToPDFSpace(Point{X: 100, Y: 100}, preview, page)
	require.NoError(t, err)
	assert.InDelta(t, 148.75, p.X, 1e-9)
	assert.InDelta(t, 140.3333333, p.Y, 1e-6)
}

func TestToPDFSpaceCorners(t *testing.T) {
	preview := Size{Width: 400, Height: 600}
	page := Size{Width: 595, Height: 842}

	origin, err := ToPDFSpace(Point{}, preview, page)
	require.NoError(t, err)
	assert.Equal(t, Point{}, origin)

	corner, err := ToPDFSpace(Point{X: 400, Y: 600}, preview, page)
	require.NoError(t, err)
	assert.InDelta(t, 595, corner.X, 1e-9)
	assert.InDelta(t, 842, corner.Y, 1e-9)
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		point   Point
		preview Size
		page    Size
	}{
		{"typical placement", Point{X: 100, Y: 100}, Size{Width: 400, Height: 600}, Size{Width: 595, Height: 842}},
		{"letter page", Point{X: 13.7, Y: 512.9}, Size{Width: 721, Height: 933}, Size{Width: 612, Height: 792}},
		{"tiny preview", Point{X: 1, Y: 2}, Size{Width: 3, Height: 5}, Size{Width: 595, Height: 842}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pdf, err := ToPDFSpace(tc.point, tc.preview, tc.page)
			require.NoError(t, err)
			back, err := ToScreenSpace(pdf, tc.preview, tc.page)
			require.NoError(t, err)
			assert.InDelta(t, tc.point.X, back.X, 1e-9)
			assert.InDelta(t, tc.point.Y, back.Y, 1e-9)
		})
	}
}

func TestToScreenSpaceDifferentPreview(t *testing.T) {
	// A signature placed in one preview renders correctly on a preview of a
	// different size.
	page := Size{Width: 595, Height: 842}
	placed, err := ToPDFSpace(Point{X: 200, Y: 300}, Size{Width: 400, Height: 600}, page)
	require.NoError(t, err)

	onLarger, err := ToScreenSpace(placed, Size{Width: 800, Height: 1200}, page)
	require.NoError(t, err)
	assert.InDelta(t, 400, onLarger.X, 1e-9)
	assert.InDelta(t, 600, onLarger.Y, 1e-9)
}

func TestInvalidPreviewSize(t *testing.T) {
	page := Size{Width: 595, Height: 842}

	for _, preview := range []Size{
		{Width: 0, Height: 600},
		{Width: 400, Height: 0},
		{Width: -1, Height: 600},
		{},
	} {
		_, err := ToPDFSpace(Point{X: 1, Y: 1}, preview, page)
		require.Error(t, err)
		assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))

		_, err = ToScreenSpace(Point{X: 1, Y: 1}, preview, page)
		require.Error(t, err)
		assert.Equal(t, apperr.KindPrecondition, apperr.KindOf(err))
	}
}

func TestDrawY(t *testing.T) {
	assert.InDelta(t, 726, DrawY(842, 100, 16), 1e-9)

	// End-to-end: preview click at (100,100) in a 400x600 preview of an A4
	// page, finalized at size 16.
	p, err := ToPDFSpace(Point{X: 100, Y: 100}, Size{Width: 400, Height: 600}, Size{Width: 595, Height: 842})
	if err != nil {
		t.Fatal(err)
	}
	assert.InDelta(t, 685.6666667, DrawY(842, p.Y, 16), 1e-6)
}
