package bytecode

import (
	"bytes"
	"encoding/binary"
	"testing"

	"embercask/value"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	chunk := New()
	chunk.AddConstant(value.Null())
	chunk.AddConstant(value.Number(3.5))
	chunk.AddConstant(value.Boolean(true))
	chunk.AddConstant(value.String("hi"))
	if _, err := chunk.Emit(OP_LOAD_CONST, 0); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, err := chunk.Emit(OP_EOF); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(chunk, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !bytes.Equal(got.Code, chunk.Code) {
		t.Fatalf("Code = %v, want %v", got.Code, chunk.Code)
	}
	if len(got.Constants) != len(chunk.Constants) {
		t.Fatalf("Constants len = %d, want %d", len(got.Constants), len(chunk.Constants))
	}
	for i, want := range chunk.Constants {
		if !value.Equal(got.Constants[i], want) {
			t.Errorf("constant %d = %+v, want %+v", i, got.Constants[i], want)
		}
	}
}

func TestDecode_RejectsNegativeCounts(t *testing.T) {
	var buf bytes.Buffer
	mustWriteInt32(t, &buf, -1) // code_count
	mustWriteInt32(t, &buf, 0)  // constants_count

	if _, err := Decode(&buf); err == nil {
		t.Fatal("expected Decode to reject a negative code_count")
	}
}

func TestDecode_RejectsUnsupportedConstantTag(t *testing.T) {
	var buf bytes.Buffer
	mustWriteInt32(t, &buf, 0) // code_count
	mustWriteInt32(t, &buf, 1) // constants_count
	buf.WriteByte(0xFE)

	if _, err := Decode(&buf); err == nil {
		t.Fatal("expected Decode to reject an unsupported constant tag")
	}
}

func mustWriteInt32(t *testing.T, buf *bytes.Buffer, n int32) {
	t.Helper()
	if err := binary.Write(buf, binary.NativeEndian, n); err != nil {
		t.Fatalf("binary.Write: %v", err)
	}
}
