package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// CSVReader exposes a CSV file of numbers as a single named 2-D tensor.
// The tensor name is the file name without extension.
type CSVReader struct {
	name  string
	value *tensor.Tensor
}

// OpenCSV opens and parses a CSV matrix file. All rows must have the
// same number of columns and every cell must parse as a float.
func OpenCSV(path string) (*CSVReader, error) {
	//nolint:gosec // G304: path comes from user input, expected for weight loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "csv")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.WithMessage(err, "csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv: empty file")
	}

	rows, cols := len(records), len(records[0])
	data := make([]float32, 0, rows*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, errors.Wrapf(tensor.ErrShape, "csv: row %d has %d columns, want %d", i, len(record), cols)
		}
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 32)
			if err != nil {
				return nil, errors.WithMessagef(err, "csv: cell (%d, %d)", i, j)
			}
			data = append(data, float32(v))
		}
	}

	value, err := tensor.FromSlice(data, tensor.Shape{rows, cols})
	if err != nil {
		return nil, errors.WithMessage(err, "csv")
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &CSVReader{name: name, value: value}, nil
}

// Format returns FormatCSV.
func (r *CSVReader) Format() Format {
	return FormatCSV
}

// Names returns the single tensor name.
func (r *CSVReader) Names() []string {
	return []string{r.name}
}

// Load returns the parsed matrix.
func (r *CSVReader) Load(name string) (*tensor.Tensor, error) {
	if name != r.name {
		return nil, errors.Errorf("csv: no tensor named %q (file holds %q)", name, r.name)
	}
	return r.value, nil
}

// Summary returns a one-line description with the matrix size.
func (r *CSVReader) Summary() string {
	//nolint:gosec // G115: byte size is non-negative
	return fmt.Sprintf("csv: 1 tensor %v, %s", r.value.Shape(), humanize.Bytes(uint64(r.value.ByteSize())))
}

// Close releases the reader. Data is held in memory, so this is a no-op.
func (r *CSVReader) Close() error {
	return nil
}
