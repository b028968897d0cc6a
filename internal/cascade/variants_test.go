package cascade

import (
	"errors"
	"slices"
	"testing"

	"github.com/eugenenazirov/vconsole-setup/internal/envfile"
)

func TestLookupVariant(t *testing.T) {
	t.Parallel()

	v, err := LookupVariant("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Name != GenericVariant || len(v.Legacy) != 0 {
		t.Fatalf("expected generic variant, got %+v", v)
	}

	if _, err := LookupVariant("slackware"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}

	want := []string{"altlinux", "arch", "fedora", "frugalware", "generic", "gentoo", "suse"}
	if got := VariantNames(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStages(t *testing.T) {
	t.Parallel()

	generic, _ := LookupVariant(GenericVariant)
	stages := Stages(generic, Paths{})
	if len(stages) != 2 {
		t.Fatalf("expected cmdline and config stages, got %d", len(stages))
	}
	if stages[0][0].Path != DefaultCmdlinePath || stages[0][0].Format != envfile.Cmdline {
		t.Fatalf("unexpected cmdline source: %+v", stages[0][0])
	}
	if stages[1][0].Path != DefaultConfigPath || stages[1][0].Format != envfile.Lines {
		t.Fatalf("unexpected config source: %+v", stages[1][0])
	}

	gentoo, _ := LookupVariant("gentoo")
	stages = Stages(gentoo, Paths{Cmdline: "/tmp/cmdline", Config: "/tmp/vconsole.conf"})
	if len(stages) != 3 || len(stages[2]) != 3 {
		t.Fatalf("expected three gentoo legacy sources, got %+v", stages)
	}
	if stages[0][0].Path != "/tmp/cmdline" || stages[1][0].Path != "/tmp/vconsole.conf" {
		t.Fatalf("custom paths not applied: %+v", stages)
	}

	fedora, _ := LookupVariant("fedora")
	cmdline := Stages(fedora, Paths{})[0][0]
	keys := make([]string, 0, len(cmdline.Bindings))
	for _, b := range cmdline.Bindings {
		keys = append(keys, b.Key)
	}
	if !slices.Contains(keys, "SYSFONT") || !slices.Contains(keys, "KEYTABLE") {
		t.Fatalf("expected fedora aliases on the kernel command line, got %v", keys)
	}
	if len(cmdlineBindings) != 5 {
		t.Fatalf("aliases leaked into the shared binding table: %v", cmdlineBindings)
	}
}
