// Package loader is the external filesystem collaborator spec.md §4.G
// describes: it owns template source strings so the core engine's
// Template and Source values can safely outlive a single load call, and
// optionally keeps a compiled-template cache fresh under an fsnotify
// watch during development.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/uwe-app/bracket"
)

// Loader is the minimal interface the core engine needs: given a name,
// return its owned source text and a logical path for diagnostics.
type Loader interface {
	Load(name string) (source string, logicalPath string, err error)
}

// FSLoader loads named templates from files under Root named
// name+Ext, compiling each against Registry and caching the result.
// Template is safe for concurrent use; RegisterPartial writes to the
// Registry's partial table and, like any Registry registration, is not.
// Watch additionally keeps the cache coherent with the filesystem for a
// development server.
type FSLoader struct {
	Root     string
	Ext      string
	Registry *bracket.Registry
	Logger   zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*bracket.Template
	locks *fileLock

	watcher *fsnotify.Watcher
	stop    chan struct{}
}

// NewFSLoader returns an FSLoader rooted at dir, loading files with the
// ".hbs" extension, against reg.
func NewFSLoader(dir string, reg *bracket.Registry) *FSLoader {
	return &FSLoader{
		Root:     dir,
		Ext:      ".hbs",
		Registry: reg,
		Logger:   zerolog.Nop(),
		cache:    make(map[string]*bracket.Template),
		locks:    newFileLock(),
	}
}

func (l *FSLoader) path(name string) string {
	return filepath.Join(l.Root, name+l.Ext)
}

// Load implements Loader: it reads name's file and returns its content
// and its path (Root joined with name+Ext), owning the returned string
// for as long as the caller keeps it.
func (l *FSLoader) Load(name string) (string, string, error) {
	p := l.path(name)
	data, err := os.ReadFile(p)
	if err != nil {
		return "", "", newIOError(name, err)
	}
	return string(data), p, nil
}

// Template returns the compiled Template for name, compiling and
// caching it on first use. Concurrent callers asking for the same
// uncompiled name block on each other, not on unrelated names.
func (l *FSLoader) Template(name string) (*bracket.Template, error) {
	if tpl, ok := l.cached(name); ok {
		return tpl, nil
	}

	l.locks.Lock(name)
	defer l.locks.Unlock(name)

	if tpl, ok := l.cached(name); ok {
		return tpl, nil
	}

	text, path, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	tpl, err := l.Registry.Compile(bracket.NewSource(path, text))
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.cache[name] = tpl
	l.mu.Unlock()
	return tpl, nil
}

func (l *FSLoader) cached(name string) (*bracket.Template, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tpl, ok := l.cache[name]
	return tpl, ok
}

// RegisterPartial loads name and registers it on Registry as a partial,
// so "{{> name}}" can reach it.
func (l *FSLoader) RegisterPartial(name string) error {
	text, path, err := l.Load(name)
	if err != nil {
		return err
	}
	return l.Registry.RegisterPartial(name, bracket.NewSource(path, text))
}

// Watch starts an fsnotify watcher over Root. On a write, create,
// remove or rename event for a tracked file, its cache entry is
// invalidated, so the next Template call recompiles from disk rather
// than serving a stale compile - real invalidation rather than always
// recompiling. Partials already registered on the Registry are not
// invalidated or reloaded.
func (l *FSLoader) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("loader: starting watch on %s: %w", l.Root, err)
	}
	if err := w.Add(l.Root); err != nil {
		_ = w.Close()
		return fmt.Errorf("loader: watching %s: %w", l.Root, err)
	}
	l.watcher = w
	l.stop = make(chan struct{})
	go l.watchLoop()
	return nil
}

func (l *FSLoader) watchLoop() {
	for {
		select {
		case <-l.stop:
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			l.invalidate(event.Name)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.Logger.Warn().Err(err).Str("root", l.Root).Msg("loader watch error")
		}
	}
}

func (l *FSLoader) invalidate(path string) {
	name := l.nameFor(path)
	l.mu.Lock()
	delete(l.cache, name)
	l.mu.Unlock()
	l.Logger.Debug().Str("name", name).Msg("invalidated cached template")
}

func (l *FSLoader) nameFor(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(rel, l.Ext)
}

// Close stops the watcher started by Watch, if any.
func (l *FSLoader) Close() error {
	if l.watcher == nil {
		return nil
	}
	close(l.stop)
	return l.watcher.Close()
}

func newIOError(name string, cause error) error {
	return bracket.NewLoadError(name, cause)
}
