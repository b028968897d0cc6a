// Package loader starts the external keymap and font helpers (loadkeys and
// setfont) against a console device and reports how they exited. Helpers are
// started without waiting; a Group waits for all of them later, in start
// order, even when one of them fails.
package loader
