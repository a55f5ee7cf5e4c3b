package tokenizer

// NativeBackend is the interface an optional, architecture-specific
// accelerated tokenizer implementation would satisfy to be used in place
// of the portable Tokenizer in this package. Only the interface is
// specified (spec.md Out of scope: "the optional native-accelerated
// tokenizer backend") — there is no implementation here, and Config
// carries no flag to select one, since selecting a backend is a
// build/wiring concern for whatever caller chooses to provide one.
type NativeBackend interface {
	ParseBlock(buf []byte) (events []interface{}, resumeOffset int)
	Position() (line, lineStart, absPos int64)
}
