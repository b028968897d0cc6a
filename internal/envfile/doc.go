// Package envfile reads key=value assignments from the kernel command line
// and from the shell-style configuration files distributions keep under /etc.
// It is deliberately tolerant: unknown syntax is skipped rather than rejected,
// since most of these files are sourced by init scripts and may contain more
// than plain assignments.
package envfile
