// Package util holds small generic helpers shared across shufa packages.
package util

// Ptr returns a pointer to the given value, for optional settings where nil
// means "use the default" and a zero value must stay expressible.
func Ptr[T any](v T) *T {
	return &v
}
