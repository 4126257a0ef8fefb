package corpus

import (
	"fmt"
	"io"
	"math"

	"github.com/sbinet/npyio/npy"
	"gonum.org/v1/gonum/mat"
)

const (
	dtypeFloat32 = "<f4"
	dtypeFloat64 = "<f8"
)

// ReadMatrix decodes a 2-D NumPy array of float32 or float64 values into a
// dense matrix with the same shape. Both C and Fortran ordering are accepted.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	nr, err := npy.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading npy header: %v", ErrDataUnavailable, err)
	}

	shape := nr.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: expected a 2-D embedding matrix, got shape %v", ErrDataUnavailable, shape)
	}
	rows, cols := shape[0], shape[1]
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: empty embedding matrix %dx%d", ErrDataUnavailable, rows, cols)
	}

	var data []float64
	switch nr.Header.Descr.Type {
	case dtypeFloat64:
		if err := nr.Read(&data); err != nil {
			return nil, fmt.Errorf("%w: reading float64 payload: %v", ErrDataUnavailable, err)
		}

	case dtypeFloat32:
		var raw []float32
		if err := nr.Read(&raw); err != nil {
			return nil, fmt.Errorf("%w: reading float32 payload: %v", ErrDataUnavailable, err)
		}
		data = make([]float64, len(raw))
		for i, v := range raw {
			data[i] = float64(v)
		}

	default:
		return nil, fmt.Errorf("%w: unsupported dtype %q", ErrDataUnavailable, nr.Header.Descr.Type)
	}

	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: payload has %d values, shape %dx%d needs %d",
			ErrDataUnavailable, len(data), rows, cols, rows*cols)
	}

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite value at offset %d", ErrDataUnavailable, i)
		}
	}

	if nr.Header.Descr.Fortran {
		// Column-major: the transpose of a cols×rows row-major matrix.
		return mat.DenseCopyOf(mat.NewDense(cols, rows, data).T()), nil
	}

	return mat.NewDense(rows, cols, data), nil
}

// WriteMatrix encodes m as a C-ordered float64 NumPy array.
func WriteMatrix(w io.Writer, m *mat.Dense) error {
	if err := npy.Write(w, m); err != nil {
		return fmt.Errorf("writing npy matrix: %w", err)
	}
	return nil
}
