package nodes

import (
	"encoding/binary"
	"math"
	"os"

	"vlsng/internal/node"
)

// FileSink writes its input port's samples as a raw little-endian float32
// stream, released on Finish — matching spec.md §6's disk format and §5's
// "file handles released before the procedure returns" resource rule,
// generalized here to "before Finish returns" since a sink is a
// long-lived node rather than a one-shot procedure call.
type FileSink struct {
	node.Base
	path string
	file *os.File
	buf  [4]byte
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{Base: node.NewBase(1, 0), path: path, file: f}, nil
}

func (s *FileSink) Implement() {
	if s.file == nil {
		return
	}
	in := s.Input(0)
	for _, sample := range in {
		binary.LittleEndian.PutUint32(s.buf[:], math.Float32bits(float32(sample)))
		s.file.Write(s.buf[:])
	}
}

func (s *FileSink) Finish() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
}
