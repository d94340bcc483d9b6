//go:build !windows

package power

// Other platforms get a no-op asserter. Recording boxes in the field
// run Windows; elsewhere the inhibitor only has to be harmless.
type noopAsserter struct{}

func newAsserter() Asserter { return noopAsserter{} }

func (noopAsserter) KeepAwake() error { return nil }
func (noopAsserter) Release() error   { return nil }
