package page

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/wedge762/deckpress/internal/prompt"
)

// A4 portrait with a 10mm margin on each side.
const (
	pdfMargin    = 10.0
	pdfPageWidth = 210.0
)

// MergePDF combines the ordered page images into one PDF, one image per PDF
// page, and returns the path actually written (".pdf" is appended when
// missing). The destination passes the same overwrite policy as every other
// output.
func MergePDF(pagePaths []string, outPath string, policy prompt.Policy) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outPath), ".pdf") {
		outPath += ".pdf"
	}
	if err := prompt.EnsureWritable(policy, outPath); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	for _, p := range pagePaths {
		imgType := strings.ToUpper(strings.TrimPrefix(filepath.Ext(p), "."))
		pdf.AddPage()
		pdf.ImageOptions(p, pdfMargin, pdfMargin, pdfPageWidth-2*pdfMargin, 0, false,
			gofpdf.ImageOptions{ImageType: imgType}, 0, "")
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("write pdf %s: %w", outPath, err)
	}
	return outPath, nil
}
