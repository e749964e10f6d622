package wave

import "math"

// halfDivisor splits a batch pixel size in half for round-half-up snapping.
const halfDivisor = 2

// SnapToBatchOffset rounds scrollTop to the nearest multiple of the batch
// pixel size (itemHeight * batchSize), rounding halves up.
//
// The rounding is done in integer arithmetic:
//
//	px    := itemHeight * batchSize
//	index := ((scrollTop + px/2) / px) * batchSize
//	return index * itemHeight
//
// A zero (or negative) itemHeight or batchSize makes px zero; that case is
// reported as ErrZeroBatchPixelSize instead of dividing. A negative scrollTop
// is reported as ErrNegativeOffset. A batch pixel size or rounding step that
// does not fit in an int is reported as ErrBatchPixelSizeOverflow or
// ErrOffsetOverflow.
func SnapToBatchOffset(scrollTop, itemHeight, batchSize int) (int, error) {
	if itemHeight <= 0 || batchSize <= 0 {
		return 0, ErrZeroBatchPixelSize
	}
	if scrollTop < 0 {
		return 0, ErrNegativeOffset
	}

	if batchSize > math.MaxInt/itemHeight {
		return 0, ErrBatchPixelSizeOverflow
	}
	batchPixelSize := itemHeight * batchSize
	if scrollTop > math.MaxInt-batchPixelSize/halfDivisor {
		return 0, ErrOffsetOverflow
	}
	batchIndex := ((scrollTop + batchPixelSize/halfDivisor) / batchPixelSize) * batchSize
	return batchIndex * itemHeight, nil
}
