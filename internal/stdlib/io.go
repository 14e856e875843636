package stdlib

import (
	"encoding/binary"
	"math"
	"os"

	"vlsng/internal/errors"
	"vlsng/internal/value"
)

// read_file sizes the sequence from file length / 4 and decodes each
// little-endian float32 sample, per spec.md §6's disk format.
var procReadFile = &value.Procedure{
	Name: "read_file", Min: 1, Max: 1, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		path, err := args[0].AsText()
		if err != nil {
			return value.TypedValue{}, err
		}
		data, err := os.ReadFile(string(path))
		if err != nil {
			return value.TypedValue{}, errors.Wrap(errors.IO, err, "read_file")
		}
		n := len(data) / 4
		seq := make(value.Sequence, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
			seq[i] = value.NumberFromFloat(float64(math.Float32frombits(bits)))
		}
		return value.FromSequence(seq), nil
	},
}

// write_file writes the sequence verbatim as little-endian float32 samples.
var procWriteFile = &value.Procedure{
	Name: "write_file", Min: 2, Max: 2, Mappable: false,
	Fn: func(args []value.TypedValue, _ interface{}) (value.TypedValue, error) {
		path, err := args[0].AsText()
		if err != nil {
			return value.TypedValue{}, err
		}
		seq, err := args[1].AsSequence()
		if err != nil {
			return value.TypedValue{}, err
		}
		data := make([]byte, len(seq)*4)
		for i, n := range seq {
			binary.LittleEndian.PutUint32(data[i*4:i*4+4], math.Float32bits(float32(n.Real)))
		}
		if err := os.WriteFile(string(path), data, 0o644); err != nil {
			return value.TypedValue{}, errors.Wrap(errors.IO, err, "write_file")
		}
		return value.FromNumber(value.NumberFromFloat(float64(len(seq)))), nil
	},
}
