//go:build windows

package shellsetup

import (
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName returns the quoted image path of the parent process,
// e.g. "C:\Program Files\PowerShell\7\pwsh.exe", or "" when it cannot be
// queried. The quotes keep normalizeShellName from splitting at the space.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ppid))
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(handle)

	for size := uint32(260); size <= 32768; size *= 2 {
		buf := make([]uint16, size)
		n := size
		err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &n)
		if err == nil {
			return `"` + windows.UTF16ToString(buf[:n]) + `"`
		}
		if err != windows.ERROR_INSUFFICIENT_BUFFER {
			return ""
		}
	}
	return ""
}
