package vm

import "fmt"

// ---------------------------------------------------------------------------
// Runtime error taxonomy
// ---------------------------------------------------------------------------

// IllegalInstructionError reports a byte outside quote mode that is not a
// recognized instruction. The interpreter halts with the cursor still on
// the faulting cell.
type IllegalInstructionError struct {
	Op  byte
	Pos Position
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("vm: illegal instruction %s at %s", opName(e.Op), e.Pos)
}

// ArithmeticError reports a division or modulo by zero. The interpreter
// halts with the cursor on the faulting cell; the operands popped before
// the fault stay popped.
type ArithmeticError struct {
	Op  byte
	Pos Position
}

func (e *ArithmeticError) Error() string {
	kind := "division"
	if e.Op == '%' {
		kind = "modulo"
	}
	return fmt.Sprintf("vm: %s by zero at %s", kind, e.Pos)
}

// InputExhaustedError reports an & or ~ instruction that found the input
// buffer unable to satisfy the read. Distinct from termination: the cursor
// stays on the input instruction, so feeding more input and stepping again
// retries it.
type InputExhaustedError struct {
	Op  byte
	Pos Position
}

func (e *InputExhaustedError) Error() string {
	return fmt.Sprintf("vm: input exhausted at %s", e.Pos)
}

// opName renders an instruction byte for error messages, falling back to
// hex for non-printable bytes.
func opName(op byte) string {
	if op >= '!' && op <= '~' {
		return fmt.Sprintf("'%c'", op)
	}
	return fmt.Sprintf("0x%02X", op)
}
