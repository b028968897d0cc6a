package cascade

import (
	"fmt"
	"sort"

	"github.com/eugenenazirov/vconsole-setup/internal/envfile"
)

const (
	// DefaultCmdlinePath is where the kernel exposes its command line.
	DefaultCmdlinePath = "/proc/cmdline"
	// DefaultConfigPath is the distribution independent console configuration.
	DefaultConfigPath = "/etc/vconsole.conf"
	// GenericVariant consults no legacy distribution files.
	GenericVariant = "generic"
)

// Variant describes the distribution specific parts of the cascade.
type Variant struct {
	Name string
	// CmdlineAliases are extra kernel command line keys, consulted after the
	// vconsole.* keys.
	CmdlineAliases []Binding
	// Legacy sources are consulted, in order, when neither the kernel command
	// line nor the primary configuration file provided anything.
	Legacy []Source
}

var cmdlineBindings = []Binding{
	{Key: "vconsole.keymap", Field: Keymap},
	{Key: "vconsole.keymap.toggle", Field: KeymapToggle},
	{Key: "vconsole.font", Field: Font},
	{Key: "vconsole.font.map", Field: FontMap},
	{Key: "vconsole.font.unimap", Field: FontUnimap},
}

var configBindings = []Binding{
	{Key: "KEYMAP", Field: Keymap},
	{Key: "KEYMAP_TOGGLE", Field: KeymapToggle},
	{Key: "FONT", Field: Font},
	{Key: "FONT_MAP", Field: FontMap},
	{Key: "FONT_UNIMAP", Field: FontUnimap},
}

var variants = map[string]Variant{
	GenericVariant: {Name: GenericVariant},
	"fedora": {
		Name: "fedora",
		CmdlineAliases: []Binding{
			{Key: "SYSFONT", Field: Font},
			{Key: "KEYTABLE", Field: Keymap},
		},
		Legacy: []Source{
			{Path: "/etc/sysconfig/console/default.kmap", Presence: Keymap},
			lines("/etc/sysconfig/i18n",
				Binding{Key: "SYSFONT", Field: Font},
				Binding{Key: "SYSFONTACM", Field: FontMap},
				Binding{Key: "UNIMAP", Field: FontUnimap},
			),
			lines("/etc/sysconfig/keyboard",
				Binding{Key: "KEYTABLE", Field: Keymap},
				Binding{Key: "KEYMAP", Field: Keymap},
			),
		},
	},
	"suse": {
		Name: "suse",
		Legacy: []Source{
			lines("/etc/sysconfig/keyboard",
				Binding{Key: "KEYTABLE", Field: Keymap},
			),
			lines("/etc/sysconfig/console",
				Binding{Key: "CONSOLE_FONT", Field: Font},
				Binding{Key: "CONSOLE_SCREENMAP", Field: FontMap},
				Binding{Key: "CONSOLE_UNICODEMAP", Field: FontUnimap},
			),
		},
	},
	"arch": {
		Name: "arch",
		Legacy: []Source{
			lines("/etc/rc.conf",
				Binding{Key: "KEYMAP", Field: Keymap},
				Binding{Key: "CONSOLEFONT", Field: Font},
				Binding{Key: "CONSOLEMAP", Field: FontMap},
			),
		},
	},
	"frugalware": {
		Name: "frugalware",
		Legacy: []Source{
			lines("/etc/sysconfig/keymap", Binding{Key: "keymap", Field: Keymap}),
			lines("/etc/sysconfig/font", Binding{Key: "font", Field: Font}),
		},
	},
	"altlinux": {
		Name: "altlinux",
		Legacy: []Source{
			lines("/etc/sysconfig/keyboard", Binding{Key: "KEYTABLE", Field: Keymap}),
			lines("/etc/sysconfig/consolefont", Binding{Key: "SYSFONT", Field: Font}),
		},
	},
	"gentoo": {
		Name: "gentoo",
		Legacy: []Source{
			lines("/etc/rc.conf", Binding{Key: "unicode", Field: Unicode}),
			// Gentoo documents upper case keys but ships lower case ones.
			lines("/etc/conf.d/consolefont",
				Binding{Key: "CONSOLEFONT", Field: Font},
				Binding{Key: "consolefont", Field: Font},
				Binding{Key: "consoletranslation", Field: FontMap},
				Binding{Key: "CONSOLETRANSLATION", Field: FontMap},
				Binding{Key: "unicodemap", Field: FontUnimap},
				Binding{Key: "UNICODEMAP", Field: FontUnimap},
			),
			lines("/etc/conf.d/keymaps",
				Binding{Key: "keymap", Field: Keymap},
				Binding{Key: "KEYMAP", Field: Keymap},
			),
		},
	},
}

func lines(path string, bindings ...Binding) Source {
	return Source{Path: path, Format: envfile.Lines, Bindings: bindings}
}

// LookupVariant returns the source table for name. An empty name selects
// the generic variant.
func LookupVariant(name string) (Variant, error) {
	if name == "" {
		name = GenericVariant
	}
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// VariantNames returns the known variant names, sorted.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths locates the two distribution independent sources.
type Paths struct {
	Cmdline string
	Config  string
}

// Stages builds the ordered cascade for v: kernel command line, then the
// primary configuration file, then the variant's legacy files.
func Stages(v Variant, paths Paths) []Stage {
	if paths.Cmdline == "" {
		paths.Cmdline = DefaultCmdlinePath
	}
	if paths.Config == "" {
		paths.Config = DefaultConfigPath
	}

	cmdline := Source{
		Path:     paths.Cmdline,
		Format:   envfile.Cmdline,
		Bindings: append(append([]Binding{}, cmdlineBindings...), v.CmdlineAliases...),
	}
	config := Source{
		Path:     paths.Config,
		Format:   envfile.Lines,
		Bindings: append([]Binding{}, configBindings...),
	}

	stages := []Stage{{cmdline}, {config}}
	if len(v.Legacy) > 0 {
		stages = append(stages, append(Stage{}, v.Legacy...))
	}
	return stages
}
