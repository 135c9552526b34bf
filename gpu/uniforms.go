package gpu

import (
	"encoding/binary"
	"math"
)

// UniformBytes encodes a column-major 4×4 matrix for the uniform buffer.
func UniformBytes(proj [16]float32) []byte {
	buf := make([]byte, 0, UniformSize)
	for _, f := range proj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
