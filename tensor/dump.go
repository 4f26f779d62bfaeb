// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/mesh"
)

// Dump writes t's RealSpace octant, the geometric tensor N without the
// -N sign or the absorbed FFT scale (per §6 "Before writing, the engine
// removes the absorbed FFT scale"), to path in the requested format: a
// self-describing container with a title, the six per-component
// labels "Nxx Nxy Nxz Nyy Nyz Nzz", a geometry block derived from m,
// and a body in binary (4- or 8-byte IEEE754) or printf-style text.
func (t *Tensor) Dump(path string, format SaveFormat, m mesh.Mesh) error {
	if format == SaveFormatNone || path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return demagerr.NewIoError("tensor.Dump", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeHeader(w, t, m, format); err != nil {
		return demagerr.NewIoError("tensor.Dump", path, err)
	}

	for k := 0; k < t.Az; k++ {
		for j := 0; j < t.Ay; j++ {
			for i := 0; i < t.Ax; i++ {
				v := t.AtReal(i, j, k)
				n := [6]float64{v.Axx, v.Axy, v.Axz, v.Ayy, v.Ayz, v.Azz}
				if err := writeRecord(w, format, n); err != nil {
					return demagerr.NewIoError("tensor.Dump", path, err)
				}
			}
		}
	}

	if err := w.Flush(); err != nil {
		return demagerr.NewIoError("tensor.Dump", path, err)
	}
	return nil
}

func writeHeader(w *bufio.Writer, t *Tensor, m mesh.Mesh, format SaveFormat) error {
	title := "# demag tensor dump\n"
	labels := "# components: Nxx Nxy Nxz Nyy Nyz Nzz\n"
	geom := fmt.Sprintf("# mesh: rx=%d ry=%d rz=%d dx=%g dy=%g dz=%g (dimensionless units)\n",
		m.Rx, m.Ry, m.Rz, m.Dx, m.Dy, m.Dz)
	octant := fmt.Sprintf("# octant: ax=%d ay=%d az=%d\n", t.Ax, t.Ay, t.Az)
	formatLine := fmt.Sprintf("# format: %s\n", formatName(format))
	for _, s := range []string{title, labels, geom, octant, formatLine} {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

func formatName(f SaveFormat) string {
	switch f {
	case SaveFormatBinary32:
		return "binary32"
	case SaveFormatBinary64:
		return "binary64"
	case SaveFormatText:
		return "text"
	default:
		return "none"
	}
}

func writeRecord(w *bufio.Writer, format SaveFormat, n [6]float64) error {
	switch format {
	case SaveFormatBinary32:
		for _, v := range n {
			if err := binary.Write(w, binary.LittleEndian, float32(v)); err != nil {
				return err
			}
		}
		return nil
	case SaveFormatBinary64:
		for _, v := range n {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		return nil
	case SaveFormatText:
		_, err := fmt.Fprintf(w, "%.8e %.8e %.8e %.8e %.8e %.8e\n", n[0], n[1], n[2], n[3], n[4], n[5])
		return err
	default:
		return fmt.Errorf("unsupported save_tensor_fmt %d", format)
	}
}
