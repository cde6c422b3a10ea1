package types

// Unverified wraps a value read out of a signed blob with no signature or
// delegation check. It is not interchangeable with T: getting at the value
// takes one of the explicitly named conversions below, which makes every
// place that trusts peeked data easy to find.
type Unverified[T any] struct {
	value T
}

// NewUnverified wraps v.
func NewUnverified[T any](v T) Unverified[T] { return Unverified[T]{value: v} }

// AssumeVerified returns the value. Only call it when the exact same blob
// bytes were verified earlier inside the same trust boundary.
func (u Unverified[T]) AssumeVerified() T { return u.value }

// ForDisplay returns the value for debugging or display. The result must
// not feed any security decision.
func (u Unverified[T]) ForDisplay() T { return u.value }
