package frame

import (
	"errors"
	"fmt"
)

// Size is the length of one DTM0660 LCD frame.
const Size = 15

var (
	ErrShortFrame = errors.New("frame: wrong frame length")
	ErrSync       = errors.New("frame: sync nibble mismatch")
)

// Frame is one LCD segment frame as emitted by the meter. Each byte carries
// its 1-based position in the high nibble and four segment bits in the low
// nibble. Frame is an array so that holding one never aliases the caller's
// buffer.
type Frame [Size]byte

// SyncError reports the first byte whose high nibble does not match its
// position.
type SyncError struct {
	Index int
	Value byte
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("frame: sync nibble in byte %d (0x%02x) is invalid", e.Index, e.Value)
}

func (e *SyncError) Unwrap() error { return ErrSync }

// Parse copies a raw buffer into a Frame. Alignment is not checked here.
func Parse(raw []byte) (Frame, error) {
	var f Frame
	if len(raw) != Size {
		return f, fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(raw), Size)
	}
	copy(f[:], raw)
	return f, nil
}

// High returns the sync nibble of byte i.
func (f Frame) High(i int) byte {
	return (f[i] >> 4) & 0x0F
}

// Low returns the payload nibble of byte i.
func (f Frame) Low(i int) byte {
	return f[i] & 0x0F
}

// Bit reports whether payload bit n (0..3) of byte i is set.
func (f Frame) Bit(i int, n uint) bool {
	return f[i]&(1<<n) != 0
}

// CheckSync verifies that byte i carries i+1 in its high nibble and returns a
// *SyncError for the first byte that does not.
func CheckSync(f Frame) error {
	for i := 0; i < Size; i++ {
		if int(f.High(i)) != i+1 {
			return &SyncError{Index: i, Value: f[i]}
		}
	}
	return nil
}

// SyncValid is the predicate form of CheckSync.
func SyncValid(f Frame) bool {
	return CheckSync(f) == nil
}

// Hex renders the frame as space separated upper-case hex bytes.
func (f Frame) Hex() string {
	return fmt.Sprintf("% X", f[:])
}
