package docgen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// RenderInput is everything the PDF needs: the substituted body text, the
// answers in form order, checkbox answers, uploaded file names and the
// optional signature with its content hash.
type RenderInput struct {
	Title         string
	Body          string
	Fields        []Field
	Values        map[string]string
	Checkboxes    map[string]bool
	FileNames     []string
	Signature     *SignatureCapture
	SignatureHash string
}

// RenderPDF assembles the document entirely client-side of the database:
// template text, a field summary, a checkbox checklist, the uploaded file
// list and the embedded signature.
func RenderPDF(in RenderInput) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(in.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, in.Title, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, in.Body, "", "L", false)
	pdf.Ln(6)

	writeFieldSummary(pdf, in)
	writeChecklist(pdf, in)
	writeFileList(pdf, in)

	if in.Signature != nil {
		if err := writeSignature(pdf, in.Signature, in.SignatureHash); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFieldSummary(pdf *fpdf.Fpdf, in RenderInput) {
	var rows [][2]string
	for _, f := range in.Fields {
		if f.Type == "checkbox" || f.Type == "file" {
			continue
		}
		if v := in.Values[f.Name]; v != "" {
			rows = append(rows, [2]string{f.Label, v})
		}
	}
	if len(rows) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Submitted Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, row[1], "", "L", false)
	}
	pdf.Ln(4)
}

func writeChecklist(pdf *fpdf.Fpdf, in RenderInput) {
	var boxes []Field
	for _, f := range in.Fields {
		if f.Type == "checkbox" {
			boxes = append(boxes, f)
		}
	}
	if len(boxes) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Checklist", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range boxes {
		mark := "[ ]"
		if in.Checkboxes[f.Name] {
			mark = "[x]"
		}
		pdf.CellFormat(0, 6, fmt.Sprintf("%s %s", mark, f.Label), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeFileList(pdf *fpdf.Fpdf, in RenderInput) {
	if len(in.FileNames) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Attached Files", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, name := range in.FileNames {
		pdf.CellFormat(0, 6, "- "+name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func writeSignature(pdf *fpdf.Fpdf, sig *SignatureCapture, hash string) error {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Signature", "", 1, "L", false, 0, "")

	if sig.Type == SignatureDrawn {
		raw, imageType, err := decodeDataURL(sig.DataURL)
		if err != nil {
			return fmt.Errorf("failed to decode signature image: %w", err)
		}
		opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(raw))
		pdf.ImageOptions("signature", pdf.GetX(), pdf.GetY(), 60, 0, true, opts, 0, "")
	} else {
		// Typed signatures are rendered as text; the SVG export is for the
		// stored record, not for PDF embedding.
		pdf.SetFont("Helvetica", "I", 22)
		pdf.CellFormat(0, 14, sig.SignerName, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s <%s>", sig.SignerName, sig.SignerEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Signed at: "+sig.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"), "", 1, "L", false, 0, "")
	if hash != "" {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(0, 4, "SHA-256: "+hash, "", 1, "L", false, 0, "")
	}
	return nil
}

// decodeDataURL splits a data URL into raw bytes and an fpdf image type.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	const prefix = "data:"
	if !strings.HasPrefix(dataURL, prefix) {
		return nil, "", fmt.Errorf("not a data URL")
	}
	meta, encoded, found := strings.Cut(dataURL[len(prefix):], ",")
	if !found {
		return nil, "", fmt.Errorf("malformed data URL")
	}

	var imageType string
	switch {
	case strings.HasPrefix(meta, "image/png"):
		imageType = "PNG"
	case strings.HasPrefix(meta, "image/jpeg"):
		imageType = "JPG"
	default:
		return nil, "", fmt.Errorf("unsupported image type in data URL: %s", meta)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return raw, imageType, nil
}
