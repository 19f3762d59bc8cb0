// Package extract reads salary documents and turns their text into the
// per-document figures consumed by the aggregator.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrPasswordRequired is returned for an encrypted document read without a password.
	ErrPasswordRequired = errors.New("PDF is password-protected, please provide the password")
	// ErrInvalidPassword is returned when the supplied password does not open the document.
	ErrInvalidPassword = errors.New("invalid password for PDF")
	// ErrNoText is returned when a document yields no extractable text.
	ErrNoText = errors.New("no text could be extracted from the document")
)

// wordGap is the horizontal distance in points above which two text runs on
// the same row are treated as separate words.
const wordGap = 1.0

// ExtractText returns the text of every non-empty page, one line per row.
func ExtractText(ctx context.Context, r io.ReaderAt, size int64, password string) (string, error) {
	reader, err := open(r, size, password)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		for _, row := range rows {
			writeRow(&sb, row.Content)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func writeRow(sb *strings.Builder, words pdf.TextHorizontal) {
	for i, w := range words {
		if i > 0 {
			prev := words[i-1]
			if w.X-(prev.X+prev.W) > wordGap {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.S)
	}
	sb.WriteByte('\n')
}

// open returns a reader over the document. With a password the bytes are
// first decrypted by pdfcpu, which handles AES-256 documents; if that fails
// the password is handed to the reader's own RC4/AES-128 support.
func open(r io.ReaderAt, size int64, password string) (*pdf.Reader, error) {
	if password == "" {
		reader, err := pdf.NewReader(r, size)
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrPasswordRequired
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		return reader, nil
	}

	if plain, err := decrypt(r, size, password); err == nil {
		reader, err := pdf.NewReader(bytes.NewReader(plain), int64(len(plain)))
		if err == nil {
			return reader, nil
		}
	}

	tried := false
	reader, err := pdf.NewReaderEncrypted(r, size, func() string {
		if tried {
			return ""
		}
		tried = true
		return password
	})
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return reader, nil
}

func decrypt(r io.ReaderAt, size int64, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(io.NewSectionReader(r, 0, size), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt PDF: %w", err)
	}
	return out.Bytes(), nil
}
