// Package vm implements the stack-based bytecode interpreter: a
// dispatch loop over bytecode.Opcode, a fixed-capacity operand stack,
// and a VM-instance-owned global slot array (spec.md §9: "avoid any
// notion of module-level mutable statics in the reimplementation").
package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"embercask/bytecode"
	"embercask/value"
)

// maxGlobals mirrors the one-byte LOAD_VAR/STORE_VAR operand width and
// the compiler's 256-entry symbol table cap.
const maxGlobals = 256

// VM is a stack-based virtual machine. It owns its stack and global
// slot array; nothing is shared across VM instances (spec.md §5).
type VM struct {
	stack   *Stack
	globals [maxGlobals]value.Value
	ip      int
	out     io.Writer
}

// New returns a VM that writes PRINT output to standard output.
func New() *VM {
	return &VM{stack: NewStack(), out: os.Stdout}
}

// NewWithWriter returns a VM that writes PRINT output to w, used by
// tests to capture output without touching the real stdout.
func NewWithWriter(w io.Writer) *VM {
	return &VM{stack: NewStack(), out: w}
}

// Run executes chunk to completion, dispatching one opcode per
// iteration starting at instruction 0. It returns nil on a clean EOF
// or RETURN, or a RuntimeError describing the first failure.
func (vm *VM) Run(chunk *bytecode.Chunk) error {
	vm.ip = 0

	for {
		if vm.ip >= len(chunk.Code) {
			return RuntimeError{Message: "ran off the end of the code buffer without an EOF instruction"}
		}

		instrStart := vm.ip
		op := bytecode.Opcode(chunk.Code[vm.ip])

		switch op {
		case bytecode.OP_EOF:
			return nil
		case bytecode.OP_NOOP:
			vm.ip++

		case bytecode.OP_POP:
			if _, ok := vm.stack.Pop(); !ok {
				return vm.underflow("POP")
			}
			vm.ip++

		case bytecode.OP_DUP:
			top, ok := vm.stack.Peek()
			if !ok {
				return vm.underflow("DUP")
			}
			if err := vm.stack.Push(top); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_SWAP:
			a, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("SWAP")
			}
			b, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("SWAP")
			}
			if err := vm.stack.Push(a); err != nil {
				return err
			}
			if err := vm.stack.Push(b); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_LOAD_CONST:
			idx := int(chunk.Code[vm.ip+1])
			if idx >= len(chunk.Constants) {
				return RuntimeError{Message: fmt.Sprintf("constant index %d out of range", idx)}
			}
			if err := vm.stack.Push(chunk.Constants[idx].Clone()); err != nil {
				return err
			}
			vm.ip += 2

		case bytecode.OP_LOAD_VAR:
			idx := int(chunk.Code[vm.ip+1])
			if err := vm.stack.Push(vm.globals[idx]); err != nil {
				return err
			}
			vm.ip += 2

		case bytecode.OP_STORE_VAR:
			idx := int(chunk.Code[vm.ip+1])
			v, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("STORE_VAR")
			}
			vm.globals[idx] = v
			vm.ip += 2

		case bytecode.OP_ADD:
			if err := vm.binaryAdd(); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_SUB:
			if err := vm.binaryNumeric("SUB", func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_MUL:
			if err := vm.binaryNumeric("MUL", func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_DIV:
			if err := vm.binaryDivide(); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_MOD:
			if err := vm.binaryModulo(); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_NEG:
			if err := vm.unaryNegate(); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_NOT:
			v, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("NOT")
			}
			if err := vm.stack.Push(value.Boolean(!v.Truthy())); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_EQ:
			if err := vm.compareEqual(false); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_NEQ:
			if err := vm.compareEqual(true); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_LT:
			if err := vm.compareOrdering("LT", func(a, b float64) bool { return a < b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_GT:
			if err := vm.compareOrdering("GT", func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_LTE:
			if err := vm.compareOrdering("LTE", func(a, b float64) bool { return a <= b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_GTE:
			if err := vm.compareOrdering("GTE", func(a, b float64) bool { return a >= b }); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_AND:
			if err := vm.logical(func(a, b bool) bool { return a && b }); err != nil {
				return err
			}
			vm.ip++
		case bytecode.OP_OR:
			if err := vm.logical(func(a, b bool) bool { return a || b }); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_JUMP:
			distance := int(binary.BigEndian.Uint16(chunk.Code[vm.ip+1 : vm.ip+3]))
			vm.ip = instrStart + 3 + distance

		case bytecode.OP_JUMP_IF_FALSE:
			distance := int(binary.BigEndian.Uint16(chunk.Code[vm.ip+1 : vm.ip+3]))
			condition, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("JUMP_IF_FALSE")
			}
			if condition.Truthy() {
				vm.ip = instrStart + 3
			} else {
				vm.ip = instrStart + 3 + distance
			}

		case bytecode.OP_LOOP:
			distance := int(binary.BigEndian.Uint16(chunk.Code[vm.ip+1 : vm.ip+3]))
			vm.ip = instrStart - distance + 2

		case bytecode.OP_CALL:
			// CALL is a no-op that leaves the stack unchanged in this
			// revision (spec.md §4.6/§9): the only effectively callable
			// operation is the builtin print, intercepted at compile time.
			vm.ip += 3

		case bytecode.OP_RETURN:
			return nil

		case bytecode.OP_NEW_ARRAY:
			if err := vm.stack.Push(value.Array(nil)); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_ARRAY_PUSH:
			element, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("ARRAY_PUSH")
			}
			arr, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("ARRAY_PUSH")
			}
			if arr.Kind != value.KindArray {
				return RuntimeError{Message: "ARRAY_PUSH target is not an array"}
			}
			arr.Arr = append(arr.Arr, element)
			if err := vm.stack.Push(arr); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_GET_INDEX:
			indexValue, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("GET_INDEX")
			}
			arr, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("GET_INDEX")
			}
			if arr.Kind != value.KindArray {
				return RuntimeError{Message: "index access on a non-array"}
			}
			if indexValue.Kind != value.KindNumber {
				return RuntimeError{Message: "array index must be a number"}
			}
			idx := int(indexValue.Number)
			if idx < 0 || idx >= len(arr.Arr) {
				return RuntimeError{Message: fmt.Sprintf("array index %d out of bounds (length %d)", idx, len(arr.Arr))}
			}
			if err := vm.stack.Push(arr.Arr[idx]); err != nil {
				return err
			}
			vm.ip++

		case bytecode.OP_SET_INDEX, bytecode.OP_NEW_OBJECT, bytecode.OP_GET_PROPERTY, bytecode.OP_SET_PROPERTY:
			return RuntimeError{Message: fmt.Sprintf("opcode %s is reserved and not implemented", opcodeName(op))}

		case bytecode.OP_PRINT:
			v, ok := vm.stack.Pop()
			if !ok {
				return vm.underflow("PRINT")
			}
			fmt.Fprintln(vm.out, v.ToString())
			vm.ip++

		default:
			return RuntimeError{Message: fmt.Sprintf("unknown opcode %d at ip %d", op, instrStart)}
		}
	}
}

func opcodeName(op bytecode.Opcode) string {
	def, err := bytecode.Get(op)
	if err != nil {
		return fmt.Sprintf("opcode(%d)", op)
	}
	return def.Name
}

func (vm *VM) underflow(opName string) error {
	return RuntimeError{Message: fmt.Sprintf("stack underflow executing %s", opName)}
}
