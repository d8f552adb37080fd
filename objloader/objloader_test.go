package objloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuad = `
# a single quad, triangulated
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

func TestLoad_TriangulatesQuadIntoTwoTriangles(t *testing.T) {
	tris, err := Load(strings.NewReader(validQuad))
	require.NoError(t, err)
	assert.Len(t, tris, 2)
}

func TestLoad_RejectsFaceWithoutNormalIndex(t *testing.T) {
	src := `
v -1 -1 0
v 1 -1 0
v 1 1 0
f 1 2 3
`
	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrMissingNormalIndex)
}

func TestLoad_RejectsEmptyFile(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoVertices)
}

func TestLoad_AggregatesMultipleBadLines(t *testing.T) {
	src := `
v not-a-number 0 0
vn 0 0 bad
`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)
}
