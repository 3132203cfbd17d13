package utilities

// Contains checks if v is present in slice.
func Contains[T comparable](slice []T, v T) bool {
	for _, s := range slice {
		if s == v {
			return true
		}
	}
	return false
}
