//go:build linux

package console

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// tioclGetFgConsole is the TIOCLINUX subcode returning the foreground console.
	tioclGetFgConsole = 12
	// kdSkbMode sets the keyboard mode (<linux/kd.h> KDSKBMODE).
	kdSkbMode = 0x4B45
	// kXlate is the translated scancode keyboard mode (<linux/kd.h> K_XLATE).
	kXlate = 0x01
)

func openDevice(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|unix.O_CLOEXEC|unix.O_NOCTTY, 0)
}

func isVirtualConsole(f *os.File) bool {
	if f == nil {
		return false
	}
	data := [1]byte{tioclGetFgConsole}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.TIOCLINUX, uintptr(unsafe.Pointer(&data[0])))
	return errno == 0
}

func setKeyboardXlate(f *os.File) error {
	return unix.IoctlSetInt(int(f.Fd()), kdSkbMode, kXlate)
}
