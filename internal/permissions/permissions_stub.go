//go:build !darwin

package permissions

// EnsureMicrophone is a no-op on platforms without a permission model for
// audio capture.
func EnsureMicrophone() error {
	return nil
}
