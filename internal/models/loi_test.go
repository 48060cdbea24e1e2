package models

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLOIDocumentBeforeCreateGeneratesToken(t *testing.T) {
	doc := &LOIDocument{}
	require.NoError(t, doc.BeforeCreate(nil))
	require.Len(t, doc.DownloadToken, 32)

	_, err := hex.DecodeString(doc.DownloadToken)
	require.NoError(t, err)

	other := &LOIDocument{}
	require.NoError(t, other.BeforeCreate(nil))
	require.NotEqual(t, doc.DownloadToken, other.DownloadToken)
}

func TestLOIDocumentBeforeCreateKeepsPresetToken(t *testing.T) {
	doc := &LOIDocument{DownloadToken: "preset-token"}
	require.NoError(t, doc.BeforeCreate(nil))
	require.Equal(t, "preset-token", doc.DownloadToken)
}
