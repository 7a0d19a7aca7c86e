package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"

	"embercask/value"
)

// FormatError reports a failure encoding or decoding the persisted
// chunk format, following the teacher's small-named-error-struct
// convention (compare compiler.DeveloperError): these are invariant
// violations against the file format, not user-facing conditions.
type FormatError struct {
	Message string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("🤖 FormatError: %s", e.Message)
}

// Tags mirror value.Kind exactly; only these four variants are
// persistable (spec.md §4.4: Array/Function constants are not
// persisted).
const (
	tagNull    = byte(value.KindNull)
	tagNumber  = byte(value.KindNumber)
	tagBoolean = byte(value.KindBoolean)
	tagString  = byte(value.KindString)
)

// Encode writes c to w in Embercask's bit-exact `.embc` layout:
// code_count (int32), constants_count (int32), the raw code bytes,
// then each constant as a tag byte plus its payload. All multi-byte
// fields use host byte order and host width per spec.md §4.4/§9 —
// portability across hosts is explicitly a non-goal in this revision.
func Encode(c *Chunk, w io.Writer) error {
	if err := binary.Write(w, binary.NativeEndian, int32(len(c.Code))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.NativeEndian, int32(len(c.Constants))); err != nil {
		return err
	}
	if _, err := w.Write(c.Code); err != nil {
		return err
	}

	for _, v := range c.Constants {
		if err := encodeConstant(w, v); err != nil {
			return err
		}
	}
	return nil
}

func encodeConstant(w io.Writer, v value.Value) error {
	switch v.Kind {
	case value.KindNull:
		_, err := w.Write([]byte{tagNull})
		return err
	case value.KindNumber:
		if _, err := w.Write([]byte{tagNumber}); err != nil {
			return err
		}
		return binary.Write(w, binary.NativeEndian, v.Number)
	case value.KindBoolean:
		b := byte(0)
		if v.Boolean {
			b = 1
		}
		_, err := w.Write([]byte{tagBoolean, b})
		return err
	case value.KindString:
		if _, err := w.Write([]byte{tagString}); err != nil {
			return err
		}
		if err := binary.Write(w, binary.NativeEndian, uint32(len(v.Str))); err != nil {
			return err
		}
		_, err := io.WriteString(w, v.Str)
		return err
	default:
		return FormatError{Message: fmt.Sprintf("cannot persist a %s constant", v.Kind)}
	}
}

// Decode reads a chunk previously written by Encode. It rejects
// constant tags outside the supported set, per spec.md §6
// ("rejects files whose constant tags are outside the supported set").
func Decode(r io.Reader) (*Chunk, error) {
	var codeCount, constantsCount int32
	if err := binary.Read(r, binary.NativeEndian, &codeCount); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.NativeEndian, &constantsCount); err != nil {
		return nil, err
	}
	if codeCount < 0 || constantsCount < 0 {
		return nil, FormatError{Message: "negative count in bytecode header"}
	}

	code := make([]byte, codeCount)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, err
	}

	constants := make([]value.Value, 0, constantsCount)
	for i := int32(0); i < constantsCount; i++ {
		v, err := decodeConstant(r)
		if err != nil {
			return nil, err
		}
		constants = append(constants, v)
	}

	return &Chunk{Code: code, Constants: constants}, nil
}

func decodeConstant(r io.Reader) (value.Value, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return value.Value{}, err
	}

	switch tag[0] {
	case tagNull:
		return value.Null(), nil
	case tagNumber:
		var n float64
		if err := binary.Read(r, binary.NativeEndian, &n); err != nil {
			return value.Value{}, err
		}
		return value.Number(n), nil
	case tagBoolean:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(b[0] != 0), nil
	case tagString:
		var length uint32
		if err := binary.Read(r, binary.NativeEndian, &length); err != nil {
			return value.Value{}, err
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return value.Value{}, err
		}
		return value.String(string(buf)), nil
	default:
		return value.Value{}, FormatError{Message: fmt.Sprintf("unsupported constant tag %d", tag[0])}
	}
}
