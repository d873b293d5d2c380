// Package vm implements the Befunge-93 virtual machine.
//
// This package contains:
//   - Toroidal program space with in-place mutation
//   - Operand stack with pop-on-empty-yields-zero semantics
//   - Buffered input for the & and ~ instructions
//   - Stepped interpreter with quote mode and blank-cell skipping
//   - Breakpoint-driven debugger state machine
//   - Static path analysis over (position, direction, quote) states
package vm
