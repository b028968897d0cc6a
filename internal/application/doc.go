// Package application performs one boot-time run: validate the console
// device, resolve the keymap and font configuration, optionally leave UTF-8
// mode, then start the keymap and font helpers and wait for both. It keeps
// the main package limited to CLI parsing and exit code mapping.
package application
