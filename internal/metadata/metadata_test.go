package metadata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteHeaderAndRows(t *testing.T) {
	rows := []Placement{
		{Name: "a.png", X: 0, Y: 0, Width: 16, Height: 16},
		{Name: "b.png", X: 16, Y: 0, Width: 16, Height: 16},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows, nil, 32, 16))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, header, lines[0])
	require.Equal(t, "a.png, 0, 0, 0, 0, 16, 16", lines[1])
	require.Equal(t, "b.png, 16, 0, 0.5, 0, 16, 16", lines[2])
}

func TestWriteAppendsDuplicatesAfterPrimaryRows(t *testing.T) {
	rows := []Placement{{Name: "a.png", X: 0, Y: 0, Width: 8, Height: 8}}
	dups := []Placement{{Name: "a-copy.png", X: 0, Y: 0, Width: 8, Height: 8}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows, dups, 8, 8))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "a.png")
	require.Contains(t, lines[2], "a-copy.png")
}

func TestWriteRejectsZeroExtent(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, nil, 0, 0)
	require.Error(t, err)
}
