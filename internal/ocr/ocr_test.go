package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LocalProvider(t *testing.T) {
	ex, err := New("local", "")
	require.NoError(t, err)

	p, ok := ex.(*PdfToText)
	require.True(t, ok)
	assert.Equal(t, "pdftotext", p.binPath)
}

func TestNew_DefaultsToLocal(t *testing.T) {
	ex, err := New("", "/opt/poppler/bin/pdftotext")
	require.NoError(t, err)

	p, ok := ex.(*PdfToText)
	require.True(t, ok)
	assert.Equal(t, "/opt/poppler/bin/pdftotext", p.binPath)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("mistral", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
