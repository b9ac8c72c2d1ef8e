package documents

import (
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// ValidatePDF checks that the file at path is a parseable PDF.
func ValidatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	if err := pdfapi.ValidateFile(path, conf); err != nil {
		return apperr.Wrap(apperr.KindMalformedInput, "file is not a valid PDF", err)
	}
	return nil
}

// ProbePageSize reads the dimensions of the first page in PDF points,
// falling back to A4 defaults when the file cannot be read.
func ProbePageSize(path string) (width, height float64) {
	dims, err := pdfapi.PageDimsFile(path)
	if err != nil || len(dims) == 0 {
		return DefaultPageWidth, DefaultPageHeight
	}
	return dims[0].Width, dims[0].Height
}

// PageCount returns the number of pages, or 0 when the file cannot be read.
func PageCount(path string) int {
	n, err := pdfapi.PageCountFile(path)
	if err != nil {
		return 0
	}
	return n
}
