package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	for _, filename := range []string{"email.txt", "email.TXT", "notas.md", "corpo"} {
		text, err := e.Extract(strings.NewReader("Preciso do status do projeto."), filename)
		require.NoError(t, err, filename)
		assert.Equal(t, "Preciso do status do projeto.", text)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	_, err := e.Extract(strings.NewReader("dados"), "planilha.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractCorruptPDF(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	_, err := e.Extract(strings.NewReader("não é um pdf"), "email.pdf")
	assert.Error(t, err)
}
