package core

// Test-only re-exports of stable panic messages, following the repo-wide
// export_privates_for_test convention.
const (
	PanicMixedContextForTest  = panicMixedContext
	PanicFrozenContextForTest = panicFrozenContext
	PanicNilContextForTest    = panicNilContext
	PanicNilOperandForTest    = panicNilOperand
)
