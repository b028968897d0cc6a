package cascade

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/vconsole-setup/internal/envfile"
)

// LoadFunc reads the assignments of one source.
type LoadFunc func(path string, format envfile.Format) (map[string]string, error)

// StatFunc reports whether a marker file exists.
type StatFunc func(path string) (fs.FileInfo, error)

// Resolver walks the cascade of stages, first match wins per field.
type Resolver struct {
	stages []Stage
	root   string
	logger *zap.Logger
	load   LoadFunc
	stat   StatFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRoot resolves every source path below root instead of "/".
func WithRoot(root string) Option {
	return func(r *Resolver) {
		r.root = root
	}
}

// WithLoader overrides how sources are read, primarily for tests.
func WithLoader(load LoadFunc) Option {
	return func(r *Resolver) {
		r.load = load
	}
}

// WithStat overrides how marker files are checked, primarily for tests.
func WithStat(stat StatFunc) Option {
	return func(r *Resolver) {
		r.stat = stat
	}
}

// NewResolver creates a Resolver over the given stages.
func NewResolver(stages []Stage, logger *zap.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		stages: stages,
		logger: logger,
		load:   envfile.Load,
		stat:   os.Stat,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Resolve runs the cascade. It never fails: unreadable sources are logged
// and skipped so the caller always gets a best-effort result. Defaults are
// not applied here.
func (r *Resolver) Resolve() Settings {
	var s Settings
	for i, stage := range r.stages {
		if s.Any() {
			r.logger.Debug("skipping lower priority configuration", zap.Int("stage", i))
			break
		}
		for _, src := range stage {
			r.apply(&s, src)
		}
	}
	return s
}

func (r *Resolver) apply(s *Settings, src Source) {
	path := r.path(src.Path)

	if src.Presence != 0 {
		if _, err := r.stat(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Warn("failed to check configuration file", zap.String("path", path), zap.Error(err))
			}
			return
		}
		if s.setIfEmpty(src.Presence, path) {
			r.logger.Debug("setting resolved", zap.Stringer("field", src.Presence), zap.String("value", path), zap.String("source", path))
		}
		return
	}

	values, err := r.load(path, src.Format)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("configuration source not present", zap.String("path", path))
			return
		}
		r.logger.Warn("failed to read configuration source", zap.String("path", path), zap.Error(err))
		return
	}

	for _, b := range src.Bindings {
		value, ok := values[b.Key]
		if !ok {
			continue
		}
		if s.setIfEmpty(b.Field, value) {
			r.logger.Debug("setting resolved",
				zap.Stringer("field", b.Field),
				zap.String("value", value),
				zap.String("key", b.Key),
				zap.String("source", path),
			)
		}
	}
}

func (r *Resolver) path(p string) string {
	if r.root == "" || r.root == "/" {
		return p
	}
	return filepath.Join(r.root, p)
}
