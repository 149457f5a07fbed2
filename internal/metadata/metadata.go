// Package metadata writes the text sidecar describing where each
// source image landed inside the packed atlas.
package metadata

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/Vivaldi101/SimpleTextureAtlas/internal/atlaserr"
	"github.com/Vivaldi101/SimpleTextureAtlas/internal/packer"
)

const header = "Atlas meta data"

// Placement is the minimal view metadata.Write needs of a packed
// image, decoupling this package from packer.Image's internals.
type Placement struct {
	Name          string
	X, Y          int
	Width, Height int
}

// FromImages converts packer.Image placements, in the order given, to
// Placement rows.
func FromImages(images []*packer.Image) []Placement {
	rows := make([]Placement, len(images))
	for i, img := range images {
		rows[i] = Placement{Name: img.Name, X: img.X, Y: img.Y, Width: img.Width, Height: img.Height}
	}
	return rows
}

// Write emits the header line followed by one CSV-ish line per row:
// `<name>, <x>, <y>, <u>, <v>, <width>, <height>` where u = x /
// atlasWidth and v = y / atlasHeight as 32-bit floats. Duplicate
// placements are appended after the LRU-ordered rows, in the order
// dups is given, without disturbing that primary ordering.
func Write(w io.Writer, rows []Placement, dups []Placement, atlasWidth, atlasHeight int) error {
	if atlasWidth <= 0 || atlasHeight <= 0 {
		return errors.Wrapf(atlaserr.ErrInvariant, "metadata: non-positive atlas extent %dx%d", atlasWidth, atlasHeight)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return errors.Wrap(atlaserr.ErrIO, "metadata: writing header")
	}

	writeRow := func(r Placement) error {
		u := float32(r.X) / float32(atlasWidth)
		v := float32(r.Y) / float32(atlasHeight)
		_, err := fmt.Fprintf(bw, "%s, %d, %d, %g, %g, %d, %d\n", r.Name, r.X, r.Y, u, v, r.Width, r.Height)
		return err
	}

	for _, r := range rows {
		if err := writeRow(r); err != nil {
			return errors.Wrap(atlaserr.ErrIO, "metadata: writing row")
		}
	}
	for _, r := range dups {
		if err := writeRow(r); err != nil {
			return errors.Wrap(atlaserr.ErrIO, "metadata: writing duplicate row")
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(atlaserr.ErrIO, "metadata: flushing")
	}
	return nil
}
