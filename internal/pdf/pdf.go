// Package pdf reads per-page text from uploaded PDF documents.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var ErrNoPages = errors.New("PDF has no pages")

// TextSource returns the text of every page of the PDF at path, in page order.
type TextSource interface {
	PageTexts(ctx context.Context, path string) ([]string, error)
}

// FitzSource extracts page text with MuPDF.
type FitzSource struct{}

func NewFitzSource() *FitzSource {
	return &FitzSource{}
}

func (s *FitzSource) PageTexts(ctx context.Context, path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, ErrNoPages
	}

	pages := make([]string, 0, pageCount)
	for n := 0; n < pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(n)
		if err != nil {
			return nil, fmt.Errorf("read text of page %d: %w", n+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// PageCount parses the PDF structure and reports its page count. It is used
// to reject uploads that are not PDFs before any other work is done.
func PageCount(rs io.ReadSeeker) (int, error) {
	n, err := api.PageCount(rs, nil)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	if n == 0 {
		return 0, ErrNoPages
	}
	return n, nil
}

// WithTempFile copies r into a temporary .pdf file, calls fn with the rewound file and
// removes the file when fn returns, whatever the outcome.
func WithTempFile(r io.Reader, fn func(f *os.File) error) (err error) {
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf("remove temp file: %w", rmErr)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind temp file: %w", err)
	}
	return fn(tmp)
}
