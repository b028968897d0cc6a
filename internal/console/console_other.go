//go:build !linux

package console

import "os"

func openDevice(string) (*os.File, error) {
	return nil, ErrUnsupported
}

func isVirtualConsole(*os.File) bool {
	return false
}

func setKeyboardXlate(*os.File) error {
	return ErrUnsupported
}
