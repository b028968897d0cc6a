// Package config loads the settings of vconsole-setup itself (device, source
// paths, helper binaries, logging) from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults. It does not
// deal with the keymap and font values; those come from the cascade.
package config
