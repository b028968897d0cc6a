package cascade

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ParseBoolean accepts the usual spellings found in init script configuration.
func ParseBoolean(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "yes", "y", "true", "t", "on":
		return true, nil
	case "0", "no", "n", "false", "f", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBoolean, v)
	}
}

// ApplyUnicodePreference folds the legacy unicode setting into the detected
// locale state. The preference can only turn UTF-8 off; asking for UTF-8 on a
// locale that is not UTF-8 capable is reported and otherwise ignored.
func ApplyUnicodePreference(s Settings, utf8 bool, logger *zap.Logger) bool {
	if s.Unicode == "" {
		return utf8
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	want, err := ParseBoolean(s.Unicode)
	if err != nil {
		logger.Error("unknown value for unicode setting", zap.String("value", s.Unicode), zap.Error(err))
		return utf8
	}

	switch {
	case want && !utf8:
		logger.Warn("configuration wants unicode, but current locale is not UTF-8 capable")
	case !want && utf8:
		logger.Debug("configuration does not want unicode, leaving it on in the kernel but not applying it to the console")
		return false
	}
	return utf8
}
