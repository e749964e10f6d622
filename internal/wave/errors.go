package wave

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by the list arithmetic.
// These can be compared with errors.Is().
var (
	// ErrZeroBatchPixelSize is returned when item height or batch size is zero,
	// which would make the batch pixel size zero and the snap division undefined.
	ErrZeroBatchPixelSize = constError("batch pixel size is zero")

	// ErrBatchPixelSizeOverflow is returned when item height * batch size
	// does not fit in an int.
	ErrBatchPixelSizeOverflow = constError("batch pixel size overflows")

	// ErrOffsetOverflow is returned when a pixel offset computation would
	// exceed the int range.
	ErrOffsetOverflow = constError("pixel offset overflows")

	// ErrLayoutTooLarge is returned when a layout is asked for more items
	// than MaxLayoutItems.
	ErrLayoutTooLarge = constError("layout has too many items")

	// ErrNegativeOffset indicates a negative pixel offset.
	ErrNegativeOffset = constError("negative scroll offset")

	// ErrInvalidItemHeight indicates a non-positive default item height.
	ErrInvalidItemHeight = constError("item height must be positive")

	// ErrInvalidBatchSize indicates a non-positive reveal batch size.
	ErrInvalidBatchSize = constError("batch size must be positive")
)
