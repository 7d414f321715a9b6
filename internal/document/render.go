package document

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"showroom/backend/internal/domain"
)

// ErrTemplateNotFound is returned before any scratch output is
// created, wrapped with the path that was attempted.
var ErrTemplateNotFound = errors.New("template not found")

// RenderError wraps any drawing or merge failure with the template it
// happened on.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render on template %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// amountKeys are formatted with thousands separators on documents.
var amountKeys = map[string]bool{
	"total_amount": true,
	"advance":      true,
	"balance":      true,
	"sold_price":   true,
	"listed_price": true,
}

const checkboxSize = 12.0

// Renderer composes a filled document: the template page underneath,
// field values drawn on top at their mapped positions, remaining
// template pages copied through unchanged.
type Renderer struct {
	FontSize float64
	Leading  float64
}

func NewRenderer() *Renderer {
	return &Renderer{FontSize: 10, Leading: 12}
}

// Render writes the filled document to outPath and returns the path.
// Output goes through a scratch file in the destination directory and
// is renamed into place only on success; the scratch file is removed
// on every failure path.
func (r *Renderer) Render(templatePath string, coords *CoordinateMap, fields map[string]string, outPath string) (string, error) {
	if _, err := os.Stat(templatePath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return "", &RenderError{Path: templatePath, Err: err}
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &RenderError{Path: templatePath, Err: err}
	}
	scratch, err := os.CreateTemp(dir, ".fill-*.pdf")
	if err != nil {
		return "", &RenderError{Path: templatePath, Err: err}
	}
	scratchPath := scratch.Name()
	if err := scratch.Close(); err != nil {
		os.Remove(scratchPath)
		return "", &RenderError{Path: templatePath, Err: err}
	}

	if err := r.compose(templatePath, coords, fields, scratchPath); err != nil {
		os.Remove(scratchPath)
		return "", err
	}
	if err := os.Rename(scratchPath, outPath); err != nil {
		os.Remove(scratchPath)
		return "", &RenderError{Path: templatePath, Err: err}
	}
	return outPath, nil
}

// compose does the actual import/draw/save. The PDF import layer
// panics on malformed input, so failures are recovered into a
// RenderError here.
func (r *Renderer) compose(templatePath string, coords *CoordinateMap, fields map[string]string, scratchPath string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &RenderError{Path: templatePath, Err: fmt.Errorf("%v", rec)}
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	importer := gofpdi.NewImporter()

	first := importer.ImportPage(pdf, templatePath, 1, "/MediaBox")
	sizes := importer.GetPageSizes()
	pageCount := len(sizes)
	if pageCount == 0 {
		return &RenderError{Path: templatePath, Err: errors.New("template has no pages")}
	}

	w, h := pageSize(sizes, 1)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
	importer.UseImportedTemplate(pdf, first, 0, 0, w, h)
	r.drawFields(pdf, coords, fields)

	for page := 2; page <= pageCount; page++ {
		tpl := importer.ImportPage(pdf, templatePath, page, "/MediaBox")
		pw, ph := pageSize(sizes, page)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pw, Ht: ph})
		importer.UseImportedTemplate(pdf, tpl, 0, 0, pw, ph)
	}

	if pdf.Err() {
		return &RenderError{Path: templatePath, Err: pdf.Error()}
	}
	if err := pdf.OutputFileAndClose(scratchPath); err != nil {
		return &RenderError{Path: templatePath, Err: err}
	}
	return nil
}

func (r *Renderer) drawFields(pdf *gofpdf.Fpdf, coords *CoordinateMap, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)

	for _, key := range keys {
		value := fields[key]
		pos := coords.Resolve(key)

		if IsCheckboxKey(key) {
			r.drawCheckbox(pdf, pos, domain.IsTruthy(value))
			continue
		}

		if amountKeys[strings.ToLower(key)] {
			value = FormatAmount(value)
		}
		pdf.SetFont("Helvetica", "", r.FontSize)
		y := pos.Y
		for _, line := range strings.Split(value, "\n") {
			if line != "" {
				pdf.Text(pos.X, y, line)
			}
			y += r.Leading
		}
	}
}

// drawCheckbox always draws the box outline and adds a cross only for
// truthy values, matching the printed forms.
func (r *Renderer) drawCheckbox(pdf *gofpdf.Fpdf, pos Position, checked bool) {
	pdf.SetLineWidth(1)
	pdf.Rect(pos.X, pos.Y, checkboxSize, checkboxSize, "D")
	if checked {
		pdf.SetLineWidth(1.5)
		pdf.Line(pos.X+2, pos.Y+2, pos.X+checkboxSize-2, pos.Y+checkboxSize-2)
		pdf.Line(pos.X+2, pos.Y+checkboxSize-2, pos.X+checkboxSize-2, pos.Y+2)
		pdf.SetLineWidth(1)
	}
}

// FormatAmount renders a numeric string with thousands separators and
// no decimals (350000 -> "350,000"). Non-numeric input passes through
// verbatim.
func FormatAmount(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return s
	}

	neg := v < 0
	n := int64(math.Round(math.Abs(v)))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// PageCount reads the number of pages in a PDF file.
func PageCount(path string) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &RenderError{Path: path, Err: fmt.Errorf("%v", rec)}
		}
	}()
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	importer := gofpdi.NewImporter()
	importer.ImportPage(pdf, path, 1, "/MediaBox")
	return len(importer.GetPageSizes()), nil
}

func pageSize(sizes map[int]map[string]map[string]float64, page int) (float64, float64) {
	if box, ok := sizes[page]["/MediaBox"]; ok {
		return box["w"], box["h"]
	}
	// A4 in points.
	return 595.28, 841.89
}
