package docgen

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
)

type SignatureType string

const (
	SignatureDrawn SignatureType = "drawn"
	SignatureTyped SignatureType = "typed"
)

var (
	ErrMissingSigner    = errors.New("signer name and email are required")
	ErrEmptyDrawing     = errors.New("drawing contains no strokes")
	ErrBadSignatureType = errors.New("signature type must be drawn or typed")
	ErrMissingDrawing   = errors.New("drawn signature image is required")
)

// SignatureCapture is the transient record produced when a signature is
// accepted. It is serialized into the submitted document and hashed; it is
// never stored on its own.
type SignatureCapture struct {
	DataURL     string        `json:"dataUrl"`
	Timestamp   time.Time     `json:"timestamp"`
	SignerName  string        `json:"signerName"`
	SignerEmail string        `json:"signerEmail"`
	Type        SignatureType `json:"type"`
}

// CaptureRequest carries the raw material for a signature. Drawn mode brings
// an exported image and its stroke count; typed mode brings the typed text.
type CaptureRequest struct {
	Type        SignatureType `json:"type"`
	SignerName  string        `json:"signer_name"`
	SignerEmail string        `json:"signer_email"`
	DataURL     string        `json:"data_url,omitempty"`
	StrokeCount int           `json:"stroke_count,omitempty"`
	Text        string        `json:"text,omitempty"`
}

// Capture validates a request and produces the signature record. Both signer
// name and email must be present; drawn mode additionally needs at least one
// stroke, typed mode falls back to the signer's name when no text was typed.
func Capture(req CaptureRequest, now time.Time) (*SignatureCapture, error) {
	if strings.TrimSpace(req.SignerName) == "" || strings.TrimSpace(req.SignerEmail) == "" {
		return nil, ErrMissingSigner
	}

	var dataURL string
	switch req.Type {
	case SignatureDrawn:
		if req.StrokeCount <= 0 {
			return nil, ErrEmptyDrawing
		}
		if req.DataURL == "" {
			return nil, ErrMissingDrawing
		}
		dataURL = req.DataURL
	case SignatureTyped:
		text := strings.TrimSpace(req.Text)
		if text == "" {
			text = strings.TrimSpace(req.SignerName)
		}
		dataURL = renderTypedSignature(text)
	default:
		return nil, ErrBadSignatureType
	}

	return &SignatureCapture{
		DataURL:     dataURL,
		Timestamp:   now,
		SignerName:  strings.TrimSpace(req.SignerName),
		SignerEmail: strings.TrimSpace(req.SignerEmail),
		Type:        req.Type,
	}, nil
}

// renderTypedSignature renders typed text centered on a fixed-size blank
// canvas in a cursive style, returned as an SVG data URL.
func renderTypedSignature(text string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="150">`+
			`<rect width="100%%" height="100%%" fill="white"/>`+
			`<text x="200" y="85" text-anchor="middle" font-family="cursive" font-style="italic" font-size="36" fill="#1a1a1a">%s</text>`+
			`</svg>`,
		html.EscapeString(text))
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// Hash computes the SHA-256 digest of the canonical serialization of a
// signature record. It is a content-integrity check only: anyone holding the
// exact record can re-derive it, and any field change alters the digest.
func Hash(sig *SignatureCapture) (string, error) {
	serialized, err := json.Marshal(sig)
	if err != nil {
		return "", fmt.Errorf("failed to serialize signature: %w", err)
	}
	sum := sha256.Sum256(serialized)
	return hex.EncodeToString(sum[:]), nil
}

// Session tracks the signature dialog through its states: no signature,
// dialog open, captured. Removing a captured signature resets to the start.
type Session struct {
	state   sessionState
	mode    SignatureType
	capture *SignatureCapture

	// Prefilled signer identity carried into the open dialog.
	SignerName  string
	SignerEmail string
}

type sessionState int

const (
	stateNone sessionState = iota
	stateDialogOpen
	stateCaptured
)

func NewSession() *Session {
	return &Session{}
}

// OpenDialog enters the capture dialog, prefilling signer identity from
// already-entered form values when available.
func (s *Session) OpenDialog(mode SignatureType, prefillName, prefillEmail string) {
	s.state = stateDialogOpen
	s.mode = mode
	s.SignerName = prefillName
	s.SignerEmail = prefillEmail
}

// Capture attempts the dialog-to-captured transition. On failure the dialog
// stays open and the session is unchanged.
func (s *Session) Capture(req CaptureRequest, now time.Time) error {
	if s.state != stateDialogOpen {
		return errors.New("no signature dialog is open")
	}
	req.Type = s.mode
	capture, err := Capture(req, now)
	if err != nil {
		return err
	}
	s.capture = capture
	s.state = stateCaptured
	return nil
}

// Remove discards a captured signature and resets the session.
func (s *Session) Remove() {
	s.capture = nil
	s.state = stateNone
}

// Captured returns the signature record, or nil when none was captured.
func (s *Session) Captured() *SignatureCapture {
	return s.capture
}
