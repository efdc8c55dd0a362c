package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_NoEditsReturnsSource(t *testing.T) {
	src := []byte("# Title\n")
	out, err := ApplyEdits(src, nil)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestApplyEdits_InsertIntoEmptyRange(t *testing.T) {
	src := []byte("```go file=a.go\n```\n")
	at := bytes.IndexByte(src, '\n') + 1

	out, err := ApplyEdits(src, []Edit{{Start: at, End: at, Replacement: []byte("package a\n")}})
	require.NoError(t, err)
	require.Equal(t, "```go file=a.go\npackage a\n```\n", string(out))
}

func TestApplyEdits_MultipleReplacementsKeepOffsets(t *testing.T) {
	src := []byte("A: old\nB: old\n")
	first := bytes.Index(src, []byte("old"))
	second := bytes.LastIndex(src, []byte("old"))

	out, err := ApplyEdits(src, []Edit{
		{Start: first, End: first + 3, Replacement: []byte("first-new")},
		{Start: second, End: second + 3, Replacement: []byte("n")},
	})
	require.NoError(t, err)
	require.Equal(t, "A: first-new\nB: n\n", string(out))
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := []byte("A: x\r\nB: x\r\n")
	idx := bytes.Index(src, []byte("x"))

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + 1, Replacement: []byte("y")}})
	require.NoError(t, err)
	require.Equal(t, "A: y\r\nB: x\r\n", string(out))
}

func TestApplyEdits_RejectsOverlappingEdits(t *testing.T) {
	_, err := ApplyEdits([]byte("abcdef"), []Edit{
		{Start: 1, End: 4, Replacement: []byte("X")},
		{Start: 3, End: 5, Replacement: []byte("Y")},
	})
	require.Error(t, err)
}

func TestApplyEdits_RejectsOutOfBounds(t *testing.T) {
	_, err := ApplyEdits([]byte("abc"), []Edit{{Start: 1, End: 9}})
	require.Error(t, err)
}
