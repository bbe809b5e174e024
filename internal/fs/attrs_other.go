//go:build !windows

package fs

// IsHidden treats dotfiles as hidden.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// ShouldHideFromListing reports whether List must skip an entry. Nothing is
// skipped outside Windows.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
