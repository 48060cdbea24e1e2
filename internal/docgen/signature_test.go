package docgen

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPNGDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func drawnRequest() CaptureRequest {
	return CaptureRequest{
		Type:        SignatureDrawn,
		SignerName:  "Ana Souza",
		SignerEmail: "ana@acme.com",
		DataURL:     testPNGDataURL,
		StrokeCount: 4,
	}
}

func TestCapture_Gating(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*CaptureRequest)
		wantErr error
	}{
		{
			name:    "missing signer name",
			mutate:  func(r *CaptureRequest) { r.SignerName = "  " },
			wantErr: ErrMissingSigner,
		},
		{
			name:    "missing signer email",
			mutate:  func(r *CaptureRequest) { r.SignerEmail = "" },
			wantErr: ErrMissingSigner,
		},
		{
			name:    "drawn with zero strokes",
			mutate:  func(r *CaptureRequest) { r.StrokeCount = 0 },
			wantErr: ErrEmptyDrawing,
		},
		{
			name:    "unknown signature type",
			mutate:  func(r *CaptureRequest) { r.Type = "stamped" },
			wantErr: ErrBadSignatureType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := drawnRequest()
			tt.mutate(&req)
			capture, err := Capture(req, now)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, capture)
		})
	}
}

func TestCapture_Drawn(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	capture, err := Capture(drawnRequest(), now)
	require.NoError(t, err)
	assert.Equal(t, testPNGDataURL, capture.DataURL)
	assert.Equal(t, SignatureDrawn, capture.Type)
	assert.Equal(t, "Ana Souza", capture.SignerName)
	assert.Equal(t, now, capture.Timestamp)
}

func TestCapture_TypedFallsBackToSignerName(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	req := CaptureRequest{
		Type:        SignatureTyped,
		SignerName:  "Bruno Lima",
		SignerEmail: "bruno@tyreco.cn",
	}
	capture, err := Capture(req, now)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(capture.DataURL, "data:image/svg+xml;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(capture.DataURL, "data:image/svg+xml;base64,"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Bruno Lima")
	assert.Contains(t, string(raw), "italic")
}

func TestCapture_TypedEscapesMarkup(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	req := CaptureRequest{
		Type:        SignatureTyped,
		SignerName:  "x",
		SignerEmail: "x@example.com",
		Text:        `<script>"&"</script>`,
	}
	capture, err := Capture(req, now)
	require.NoError(t, err)

	raw, _ := base64.StdEncoding.DecodeString(strings.TrimPrefix(capture.DataURL, "data:image/svg+xml;base64,"))
	assert.NotContains(t, string(raw), "<script>")
}

func TestHash_Determinism(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sig, err := Capture(drawnRequest(), now)
	require.NoError(t, err)

	h1, err := Hash(sig)
	require.NoError(t, err)
	h2, err := Hash(sig)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	// Any field change alters the digest.
	changedName := *sig
	changedName.SignerName = "Someone Else"
	h3, err := Hash(&changedName)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	changedTime := *sig
	changedTime.Timestamp = now.Add(time.Second)
	h4, err := Hash(&changedTime)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)

	changedType := *sig
	changedType.Type = SignatureTyped
	h5, err := Hash(&changedType)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h5)
}

func TestSession_StateMachine(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := NewSession()

	// Capture without an open dialog is rejected.
	err := s.Capture(drawnRequest(), now)
	assert.Error(t, err)
	assert.Nil(t, s.Captured())

	s.OpenDialog(SignatureDrawn, "Ana Souza", "ana@acme.com")
	assert.Equal(t, "Ana Souza", s.SignerName)
	assert.Equal(t, "ana@acme.com", s.SignerEmail)

	// A failed capture keeps the dialog open.
	bad := drawnRequest()
	bad.StrokeCount = 0
	assert.ErrorIs(t, s.Capture(bad, now), ErrEmptyDrawing)
	assert.Nil(t, s.Captured())

	require.NoError(t, s.Capture(drawnRequest(), now))
	require.NotNil(t, s.Captured())
	assert.NotEmpty(t, s.Captured().DataURL)

	s.Remove()
	assert.Nil(t, s.Captured())
}
