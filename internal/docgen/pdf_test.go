package docgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPDF_WithoutSignature(t *testing.T) {
	out, err := RenderPDF(RenderInput{
		Title:  "Letter of Intent",
		Body:   "Hello Acme, contact: [email]",
		Fields: DefaultFields(),
		Values: map[string]string{"company_name": "Acme"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPDF_WithTypedSignatureAndChecklist(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sig, err := Capture(CaptureRequest{
		Type:        SignatureTyped,
		SignerName:  "Ana Souza",
		SignerEmail: "ana@acme.com",
	}, now)
	require.NoError(t, err)

	hash, err := Hash(sig)
	require.NoError(t, err)

	fields := append(DefaultFields(),
		Field{Name: "accepts_terms", Label: "Accepts terms", Type: "checkbox"},
		Field{Name: "attachment", Label: "Attachment", Type: "file"},
	)

	out, err := RenderPDF(RenderInput{
		Title:         "Supply Agreement",
		Body:          "Body text",
		Fields:        fields,
		Values:        map[string]string{"company_name": "Acme", "email": "ana@acme.com"},
		Checkboxes:    map[string]bool{"accepts_terms": true},
		FileNames:     []string{"registration.pdf"},
		Signature:     sig,
		SignatureHash: hash,
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestDecodeDataURL(t *testing.T) {
	raw, imageType, err := decodeDataURL(testPNGDataURL)
	require.NoError(t, err)
	assert.Equal(t, "PNG", imageType)
	assert.NotEmpty(t, raw)

	_, _, err = decodeDataURL("not-a-data-url")
	assert.Error(t, err)

	_, _, err = decodeDataURL("data:image/tiff;base64,AAAA")
	assert.Error(t, err)
}
