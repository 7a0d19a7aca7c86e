package bytecode

import (
	"strings"
	"testing"

	"embercask/value"
)

func TestEmit_NoOperandInstruction(t *testing.T) {
	chunk := New()
	offset, err := chunk.Emit(OP_ADD)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}
	if len(chunk.Code) != 1 || chunk.Code[0] != byte(OP_ADD) {
		t.Fatalf("Code = %v, want a single OP_ADD byte", chunk.Code)
	}
}

func TestEmit_OneByteOperand(t *testing.T) {
	chunk := New()
	if _, err := chunk.Emit(OP_LOAD_CONST, 7); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := []byte{byte(OP_LOAD_CONST), 7}
	if string(chunk.Code) != string(want) {
		t.Fatalf("Code = %v, want %v", chunk.Code, want)
	}
}

func TestEmit_TwoByteOperandIsBigEndian(t *testing.T) {
	chunk := New()
	if _, err := chunk.Emit(OP_JUMP, 0x0102); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := []byte{byte(OP_JUMP), 0x01, 0x02}
	if string(chunk.Code) != string(want) {
		t.Fatalf("Code = %v, want %v", chunk.Code, want)
	}
}

func TestEmit_UnknownOpcodeErrors(t *testing.T) {
	chunk := New()
	if _, err := chunk.Emit(Opcode(250)); err == nil {
		t.Fatal("expected an error emitting an undefined opcode")
	}
}

func TestAddConstant_ReturnsSequentialIndices(t *testing.T) {
	chunk := New()
	i0 := chunk.AddConstant(value.Number(1))
	i1 := chunk.AddConstant(value.String("x"))
	if i0 != 0 || i1 != 1 {
		t.Fatalf("indices = (%d, %d), want (0, 1)", i0, i1)
	}
	if len(chunk.Constants) != 2 {
		t.Fatalf("Constants len = %d, want 2", len(chunk.Constants))
	}
}

func TestAddConstant_PanicsPastCap(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected AddConstant to panic past the constants cap")
		}
	}()
	chunk := New()
	for i := 0; i < maxConstants; i++ {
		chunk.AddConstant(value.Number(float64(i)))
	}
	chunk.AddConstant(value.Number(999))
}

func TestDisassemble_RendersEachInstructionOnItsOwnLine(t *testing.T) {
	chunk := New()
	idx := chunk.AddConstant(value.Number(5))
	if _, err := chunk.Emit(OP_LOAD_CONST, idx); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, err := chunk.Emit(OP_PRINT); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if _, err := chunk.Emit(OP_EOF); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	text, err := Disassemble(chunk)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 disassembled lines, got %d: %q", len(lines), text)
	}
	if !strings.HasPrefix(lines[0], "0000") || !strings.Contains(lines[0], "OP_LOAD_CONST") {
		t.Errorf("line 0 = %q, want offset 0000 and OP_LOAD_CONST", lines[0])
	}
	if !strings.Contains(lines[1], "OP_PRINT") {
		t.Errorf("line 1 = %q, want OP_PRINT", lines[1])
	}
	if !strings.Contains(lines[2], "OP_EOF") {
		t.Errorf("line 2 = %q, want OP_EOF", lines[2])
	}
}

func TestDisassemble_TruncatedInstructionErrors(t *testing.T) {
	chunk := New()
	chunk.WriteByte(byte(OP_LOAD_CONST))
	if _, err := Disassemble(chunk); err == nil {
		t.Fatal("expected an error disassembling a truncated instruction")
	}
}
