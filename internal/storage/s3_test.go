package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileIntegrity(t *testing.T) {
	data := []byte("signed agreement")
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	svc := &S3Service{}
	assert.NoError(t, svc.ValidateFileIntegrity(data, hash))
	assert.Error(t, svc.ValidateFileIntegrity([]byte("tampered bytes"), hash))
	assert.Error(t, svc.ValidateFileIntegrity(data, "deadbeef"))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("doc-123", "registration", "Company Certificate.pdf")
	assert.Equal(t, "doc-123/registration_Company-Certificate.pdf", key)

	// Without an explicit prefix a timestamp is generated.
	key = ObjectKey("doc-123", "", "a.pdf")
	assert.True(t, strings.HasPrefix(key, "doc-123/"))
	assert.True(t, strings.HasSuffix(key, "_a.pdf"))
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain.pdf", "plain.pdf"},
		{"with spaces.pdf", "with-spaces.pdf"},
		{"../../etc/passwd", "passwd"},
		{"relatório_área.pdf", "relat-rio_-rea.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeFileName(tt.in))
	}
}
