//go:build windows

package fs

import (
	"os"

	"golang.org/x/sys/windows"
)

func fileAttributes(path string) (uint32, error) {
	if path == "" {
		return 0, os.ErrInvalid
	}
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}

// IsHidden uses the hidden attribute, falling back to the dot prefix when the
// attributes cannot be read.
func IsHidden(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// ShouldHideFromListing skips protected system junctions such as
// "Application Data" that cannot be opened anyway.
func ShouldHideFromListing(fullPath, _ string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return false
	}
	const protected = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&protected == protected
}
