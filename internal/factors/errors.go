package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for registry and overlay construction.
// Compare with errors.Is().
var (
	// ErrEmptyKey indicates a factor without a key.
	ErrEmptyKey = constError("factor key cannot be empty")

	// ErrNegativeFactor indicates a factor with a negative value per unit.
	ErrNegativeFactor = constError("factor value cannot be negative")

	// ErrDuplicateKey indicates two factors sharing one key.
	ErrDuplicateKey = constError("duplicate factor key")

	// ErrUnsupportedSchema indicates an overlay file whose schema version is
	// outside the supported range.
	ErrUnsupportedSchema = constError("unsupported factor file schema version")
)
