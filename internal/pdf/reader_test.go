package pdf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	data, err := NewRenderer().Render(context.Background(), sampleRecord(), "inspect")
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)

	assert.Equal(t, 2, info.Pages)
	assert.Equal(t, int64(len(data)), info.Size)
	require.Len(t, info.PageTexts, 2)
	assert.Contains(t, info.Text(), "Juan Perez")
	assert.Equal(t, 1, strings.Count(info.Text(), strings.TrimSpace(pageBreak)))
}

func TestInspect_Invalid(t *testing.T) {
	_, err := Inspect([]byte("%PDF-1.4 garbage"))
	assert.Error(t, err)
}

func TestExtractPages_Invalid(t *testing.T) {
	_, err := ExtractPages([]byte("not a pdf"))
	assert.Error(t, err)
}

func TestInspect_Truncated(t *testing.T) {
	data, err := NewRenderer(WithAssets(Assets{})).Render(context.Background(), sampleRecord(), "truncated")
	require.NoError(t, err)

	for _, cut := range []int{len(data) / 4, len(data) / 3, len(data) / 2, len(data) - 10} {
		assert.NotPanics(t, func() {
			_, err := Inspect(data[:cut])
			assert.Error(t, err)
		}, "cut at %d", cut)
	}
}
