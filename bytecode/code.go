// Package bytecode defines Embercask's compiled unit: a linear
// instruction buffer plus a parallel constants pool (a "chunk"), the
// opcode set the compiler emits and the VM dispatches, and the
// persisted file format described in format.go. It is split out of
// the compiler package so it stands on its own as the interface
// between compile and run tooling.
package bytecode

import (
	"fmt"
	"strings"

	"embercask/value"
)

// Opcode identifies a single bytecode instruction.
type Opcode byte

const (
	OP_NOOP Opcode = iota
	OP_EOF

	OP_POP
	OP_DUP
	OP_SWAP

	OP_LOAD_CONST
	OP_LOAD_VAR
	OP_STORE_VAR

	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD
	OP_NEG

	OP_NOT
	OP_EQ
	OP_NEQ
	OP_LT
	OP_GT
	OP_LTE
	OP_GTE
	OP_AND
	OP_OR

	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP

	OP_CALL
	OP_RETURN

	OP_NEW_ARRAY
	OP_ARRAY_PUSH
	OP_GET_INDEX
	OP_SET_INDEX
	OP_NEW_OBJECT
	OP_GET_PROPERTY
	OP_SET_PROPERTY

	OP_PRINT
)

// OpCodeDefinition names an opcode and its operand widths, in bytes,
// in emission order.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_NOOP: {Name: "OP_NOOP", OperandWidths: []int{}},
	OP_EOF:  {Name: "OP_EOF", OperandWidths: []int{}},

	OP_POP:  {Name: "OP_POP", OperandWidths: []int{}},
	OP_DUP:  {Name: "OP_DUP", OperandWidths: []int{}},
	OP_SWAP: {Name: "OP_SWAP", OperandWidths: []int{}},

	OP_LOAD_CONST: {Name: "OP_LOAD_CONST", OperandWidths: []int{1}},
	OP_LOAD_VAR:   {Name: "OP_LOAD_VAR", OperandWidths: []int{1}},
	OP_STORE_VAR:  {Name: "OP_STORE_VAR", OperandWidths: []int{1}},

	OP_ADD: {Name: "OP_ADD", OperandWidths: []int{}},
	OP_SUB: {Name: "OP_SUB", OperandWidths: []int{}},
	OP_MUL: {Name: "OP_MUL", OperandWidths: []int{}},
	OP_DIV: {Name: "OP_DIV", OperandWidths: []int{}},
	OP_MOD: {Name: "OP_MOD", OperandWidths: []int{}},
	OP_NEG: {Name: "OP_NEG", OperandWidths: []int{}},

	OP_NOT: {Name: "OP_NOT", OperandWidths: []int{}},
	OP_EQ:  {Name: "OP_EQ", OperandWidths: []int{}},
	OP_NEQ: {Name: "OP_NEQ", OperandWidths: []int{}},
	OP_LT:  {Name: "OP_LT", OperandWidths: []int{}},
	OP_GT:  {Name: "OP_GT", OperandWidths: []int{}},
	OP_LTE: {Name: "OP_LTE", OperandWidths: []int{}},
	OP_GTE: {Name: "OP_GTE", OperandWidths: []int{}},
	OP_AND: {Name: "OP_AND", OperandWidths: []int{}},
	OP_OR:  {Name: "OP_OR", OperandWidths: []int{}},

	OP_JUMP:           {Name: "OP_JUMP", OperandWidths: []int{2}},
	OP_JUMP_IF_FALSE:  {Name: "OP_JUMP_IF_FALSE", OperandWidths: []int{2}},
	OP_LOOP:           {Name: "OP_LOOP", OperandWidths: []int{2}},

	OP_CALL:    {Name: "OP_CALL", OperandWidths: []int{1, 1}},
	OP_RETURN:  {Name: "OP_RETURN", OperandWidths: []int{}},

	OP_NEW_ARRAY:    {Name: "OP_NEW_ARRAY", OperandWidths: []int{}},
	OP_ARRAY_PUSH:   {Name: "OP_ARRAY_PUSH", OperandWidths: []int{}},
	OP_GET_INDEX:    {Name: "OP_GET_INDEX", OperandWidths: []int{}},
	OP_SET_INDEX:    {Name: "OP_SET_INDEX", OperandWidths: []int{}},
	OP_NEW_OBJECT:   {Name: "OP_NEW_OBJECT", OperandWidths: []int{}},
	OP_GET_PROPERTY: {Name: "OP_GET_PROPERTY", OperandWidths: []int{}},
	OP_SET_PROPERTY: {Name: "OP_SET_PROPERTY", OperandWidths: []int{}},

	OP_PRINT: {Name: "OP_PRINT", OperandWidths: []int{}},
}

// Get looks up an opcode's definition.
func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode: '%d' undefined", op)
	}
	return def, nil
}

// instructionWidth returns 1 (the opcode byte) plus the sum of op's
// operand widths.
func instructionWidth(def *OpCodeDefinition) int {
	width := 1
	for _, w := range def.OperandWidths {
		width += w
	}
	return width
}

// AssembleInstruction encodes op and its operands into a single
// instruction: the opcode byte followed by each operand written
// big-endian at its defined width. Operands wider than their defined
// width are truncated by the encoding (callers are expected to respect
// the width, e.g. a one-byte constant index must be < 256).
func AssembleInstruction(op Opcode, operands ...int) ([]byte, error) {
	def, err := Get(op)
	if err != nil {
		return nil, err
	}

	instruction := make([]byte, instructionWidth(def))
	instruction[0] = byte(op)

	offset := 1
	for i, width := range def.OperandWidths {
		operand := operands[i]
		switch width {
		case 1:
			instruction[offset] = byte(operand)
		case 2:
			instruction[offset] = byte((operand >> 8) & 0xFF)
			instruction[offset+1] = byte(operand & 0xFF)
		}
		offset += width
	}
	return instruction, nil
}

// DiassembleInstruction renders a single instruction (opcode byte plus
// its operand bytes) as a human-readable string, used by the `disasm`
// driver subcommand and by tests.
func DiassembleInstruction(instruction []byte) (string, error) {
	op := Opcode(instruction[0])
	def, err := Get(op)
	if err != nil {
		return "", err
	}

	if len(def.OperandWidths) == 0 {
		return fmt.Sprintf("opcode: %s, operand: None, operand widths: 0 bytes", def.Name), nil
	}

	offset := 1
	totalWidth := 0
	operandStrs := make([]int, 0, len(def.OperandWidths))
	for _, width := range def.OperandWidths {
		var operand int
		switch width {
		case 1:
			operand = int(instruction[offset])
		case 2:
			operand = int(instruction[offset])<<8 | int(instruction[offset+1])
		}
		operandStrs = append(operandStrs, operand)
		offset += width
		totalWidth += width
	}

	if len(operandStrs) == 1 {
		return fmt.Sprintf("opcode: %s, operand: %d, operand widths: %d bytes", def.Name, operandStrs[0], totalWidth), nil
	}
	return fmt.Sprintf("opcode: %s, operand: %v, operand widths: %d bytes", def.Name, operandStrs, totalWidth), nil
}

// Disassemble renders every instruction in c.Code as a line of
// human-readable text, offset-prefixed, in emission order. Used by the
// `disasm` driver subcommand and by tests that want a readable dump
// rather than raw bytes.
func Disassemble(c *Chunk) (string, error) {
	var out strings.Builder
	ip := 0
	for ip < len(c.Code) {
		op := Opcode(c.Code[ip])
		def, err := Get(op)
		if err != nil {
			return "", err
		}
		width := instructionWidth(def)
		if ip+width > len(c.Code) {
			return "", fmt.Errorf("truncated instruction at offset %d", ip)
		}
		line, err := DiassembleInstruction(c.Code[ip : ip+width])
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&out, "%04d  %s\n", ip, line)
		ip += width
	}
	return out.String(), nil
}

// maxConstants is the hard cap spec.md's one-byte constant index
// imposes: a chunk cannot reference more than 256 distinct constants.
const maxConstants = 256

// Chunk is a compiled unit: a growable instruction buffer plus an
// append-only constants pool. Both grow by ordinary slice append;
// there is no explicit capacity-doubling step to mirror, since Go's
// append already amortizes growth the way the source's manual
// doubling did.
type Chunk struct {
	Code      []byte
	Constants []value.Value
}

// New returns an empty Chunk ready for the compiler to emit into.
func New() *Chunk {
	return &Chunk{}
}

// WriteByte appends a single raw byte to the instruction stream.
// Callers normally use Emit instead; WriteByte is exposed for the
// rare case (back-patching placeholders) where raw bytes are needed.
func (c *Chunk) WriteByte(b byte) {
	c.Code = append(c.Code, b)
}

// Emit assembles op with its operands and appends the resulting
// instruction to Code, returning the offset of the opcode byte.
func (c *Chunk) Emit(op Opcode, operands ...int) (int, error) {
	instruction, err := AssembleInstruction(op, operands...)
	if err != nil {
		return 0, err
	}
	offset := len(c.Code)
	c.Code = append(c.Code, instruction...)
	return offset, nil
}

// AddConstant appends v to the constants pool and returns its index.
// Panics with a DeveloperError-shaped message past the 256-constant
// cap the one-byte LOAD_CONST operand imposes — this is an invariant
// violation in the compiler, not a user-facing condition. The panic
// value is a plain string; the compiler checks the cap itself before
// calling AddConstant, so a compile that hits it fails with a
// compiler.DeveloperError instead.
func (c *Chunk) AddConstant(v value.Value) int {
	if len(c.Constants) >= maxConstants {
		panic(fmt.Sprintf("🤖 DeveloperError: chunk exceeds %d constants", maxConstants))
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
