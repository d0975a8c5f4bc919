//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

const reservedChars = `<>":/\|?*;`

const enableVirtualTerminalProcessing uint32 = 0x4

// EnableColorOutput reports whether stream is a console able to show colors,
// switching VT100 sequence processing on. NO_COLOR disables colors.
func EnableColorOutput(stream *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(stream.Fd())) || !haveVTConsole() {
		return false
	}

	handle := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing) == nil
}

// haveVTConsole checks that console is from Windows 10 or later.
func haveVTConsole() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	major, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	return err == nil && major >= 10
}
