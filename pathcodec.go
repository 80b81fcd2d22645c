package tilescape

import (
	"encoding/binary"
	"math"
)

// Compact binary path-command encoding. Each record is one opcode byte
// followed by little-endian float32 operands. The layout is shared with
// the companion high-performance backend, so it must not change:
//
//	0x00 close    ()
//	0x01 moveTo   (x, y)
//	0x02 lineTo   (x, y)
//	0x03 quadTo   (x1, y1, x2, y2)
//	0x04 cubicTo  (x1, y1, x2, y2, x3, y3)
const (
	opClose   byte = 0
	opMoveTo  byte = 1
	opLineTo  byte = 2
	opQuadTo  byte = 3
	opCubicTo byte = 4
)

// operand counts per opcode; -1 marks unknown opcodes.
var opArity = [256]int8{}

func init() {
	for i := range opArity {
		opArity[i] = -1
	}
	opArity[opClose] = 0
	opArity[opMoveTo] = 2
	opArity[opLineTo] = 2
	opArity[opQuadTo] = 4
	opArity[opCubicTo] = 6
}

// DecodePathData decodes a compact binary path-command stream into a
// Path. The decoder is tolerant by design: an unknown opcode byte is
// skipped, and a record with truncated operands ends the decode at that
// point. It never fails; malformed geometry simply yields the path that
// was readable, so one bad node cannot abort a tile render.
func DecodePathData(data []byte) *Path {
	p := NewPath()
	pos := 0
	for pos < len(data) {
		op := data[pos]
		pos++

		arity := opArity[op]
		if arity < 0 {
			// Unknown opcode: skip the byte and resynchronize on the
			// next one rather than failing the whole stream.
			continue
		}
		need := int(arity) * 4
		if pos+need > len(data) {
			// Truncated record: stop here, keep what we have.
			break
		}

		var v [6]float64
		for i := 0; i < int(arity); i++ {
			bits := binary.LittleEndian.Uint32(data[pos:])
			v[i] = float64(math.Float32frombits(bits))
			pos += 4
		}

		switch op {
		case opClose:
			p.Close()
		case opMoveTo:
			p.MoveTo(v[0], v[1])
		case opLineTo:
			p.LineTo(v[0], v[1])
		case opQuadTo:
			p.QuadraticTo(v[0], v[1], v[2], v[3])
		case opCubicTo:
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		}
	}
	return p
}

// AppendPathData appends the compact binary encoding of p to dst and
// returns the extended buffer. Coordinates are narrowed to float32; the
// round trip through DecodePathData reproduces the operation sequence
// within float32 precision.
func AppendPathData(dst []byte, p *Path) []byte {
	put := func(op byte, coords ...float64) {
		dst = append(dst, op)
		for _, c := range coords {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(c)))
			dst = append(dst, buf[:]...)
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			put(opMoveTo, e.Point.X, e.Point.Y)
		case LineTo:
			put(opLineTo, e.Point.X, e.Point.Y)
		case QuadTo:
			put(opQuadTo, e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			put(opCubicTo, e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			put(opClose)
		}
	}
	return dst
}

// EncodePathData encodes p into a fresh buffer.
func EncodePathData(p *Path) []byte {
	return AppendPathData(nil, p)
}
