package memutils

// Validatable is implemented by containers and memory resources that can check their own
// bookkeeping. DebugValidate calls Validate after structural changes in debug builds.
type Validatable interface {
	Validate() error
}
