package loader

const (
	// DefaultLoadKeys is the keymap helper binary.
	DefaultLoadKeys = "/bin/loadkeys"
	// DefaultSetFont is the font helper binary.
	DefaultSetFont = "/bin/setfont"
	// DefaultKeymap is used when no source names a keymap.
	DefaultKeymap = "us"
	// DefaultFont is used when no source names a font.
	DefaultFont = "latarcyrheb-sun16"
)

// KeymapArgs builds: loadkeys -q -C <device> [-u] <keymap> [<toggle>]
func KeymapArgs(binary, device, keymap, toggle string, utf8 bool) []string {
	args := []string{binary, "-q", "-C", device}
	if utf8 {
		args = append(args, "-u")
	}
	args = append(args, keymap)
	if toggle != "" {
		args = append(args, toggle)
	}
	return args
}

// FontArgs builds: setfont -C <device> <font> [-m <map>] [-u <unimap>]
func FontArgs(binary, device, font, fontMap, unimap string) []string {
	args := []string{binary, "-C", device, font}
	if fontMap != "" {
		args = append(args, "-m", fontMap)
	}
	if unimap != "" {
		args = append(args, "-u", unimap)
	}
	return args
}
