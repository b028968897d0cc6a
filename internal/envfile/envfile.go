package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format selects how assignments are separated in a source.
type Format int

const (
	// Lines holds one assignment per line, as in /etc/vconsole.conf.
	Lines Format = iota
	// Cmdline holds whitespace separated tokens, as in /proc/cmdline.
	Cmdline
)

func (f Format) String() string {
	switch f {
	case Lines:
		return "lines"
	case Cmdline:
		return "cmdline"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Load opens path and parses it in the given format. A missing file is
// reported with an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string, format Format) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values map[string]string
	switch format {
	case Cmdline:
		values, err = ParseCmdline(f)
	default:
		values, err = ParseLines(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}

// ParseCmdline splits r on spaces, tabs and newlines and collects every
// key=value token. Tokens without '=' (flags such as "quiet") are ignored.
func ParseCmdline(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	values := make(map[string]string)
	for _, token := range strings.FieldsFunc(string(data), isSeparator) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = unquote(value)
	}
	return values, nil
}

// ParseLines reads one assignment per line. Blank lines, comments starting
// with '#' or ';' and lines that are not assignments are skipped. As in the
// shell, "KEY = value" is not an assignment. A leading "export " is accepted.
// The last assignment of a key wins. Lines may be of any length.
func ParseLines(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	reader := bufio.NewReader(r)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read: %w", err)
		}
		parseLine(values, raw)
		if err != nil {
			break
		}
	}
	return values, nil
}

func parseLine(values map[string]string, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' || line[0] == ';' {
		return
	}
	if rest, ok := strings.CutPrefix(line, "export "); ok {
		line = strings.TrimLeft(rest, " \t")
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return
	}
	values[key] = unquote(strings.TrimSpace(value))
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
