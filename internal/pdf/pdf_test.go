package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a well-formed PDF with one text line per page.
func minimalPDF(pages ...string) []byte {
	var objects []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestWithTempFileRemovesFileOnSuccess(t *testing.T) {
	var path string
	err := WithTempFile(strings.NewReader("payload"), func(f *os.File) error {
		path = f.Name()
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(b))
		assert.True(t, strings.HasSuffix(path, ".pdf"))
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestWithTempFileRemovesFileOnFailure(t *testing.T) {
	boom := errors.New("boom")
	var path string
	err := WithTempFile(strings.NewReader("payload"), func(f *os.File) error {
		path = f.Name()
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(bytes.NewReader(minimalPDF("one", "two", "three")))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = PageCount(bytes.NewReader([]byte("this is not a pdf")))
	assert.Error(t, err)
}

func TestFitzSourcePageTexts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MuPDF test in short mode")
	}

	var pages []string
	err := WithTempFile(bytes.NewReader(minimalPDF("First page question", "Second page options")), func(f *os.File) error {
		var err error
		pages, err = NewFitzSource().PageTexts(context.Background(), f.Name())
		return err
	})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "First page question")
	assert.Contains(t, pages[1], "Second page options")
}
