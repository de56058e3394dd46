// Package persistence serialises the set of window handles stored on each
// workspace to a TOML file on disk, so that windows hidden by an inactive
// workspace can be found again after a restart of the daemon.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/kimgoetzke/randolf/internal/identity"
	"github.com/kimgoetzke/randolf/internal/logging"
	"github.com/kimgoetzke/randolf/internal/window"
)

const dataFileName = "randolf/workspaces.toml"

// DefaultPath returns the XDG data-home path Randolf stores workspace
// membership at ("$XDG_DATA_HOME/randolf/workspaces.toml", falling back to
// "~/.local/share" per the XDG base directory spec), mirroring
// config.DefaultConfigPath's resolution.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(dataFileName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspaces file path: %w", err)
	}
	return path, nil
}

// entry is the on-disk representation of one stored window handle.
type entry struct {
	Handle uint32 `toml:"handle"`
}

// fileSchema is the whole file's shape: a single top-level "workspaces"
// table keyed by PersistentWorkspaceId.Key(), each value an array of
// handle entries.
type fileSchema struct {
	Workspaces map[string][]entry `toml:"workspaces"`
}

// File is the handle to the on-disk workspace-membership record. Every
// mutating method rewrites the whole file synchronously; a write failure is
// returned to the caller, never swallowed.
type File struct {
	mu   sync.Mutex
	path string
	data fileSchema
	log  logging.Sink
}

// Load reads path, creating an empty file there if it does not yet exist.
func Load(path string, log logging.Sink) (*File, error) {
	f := &File{path: path, data: fileSchema{Workspaces: map[string][]entry{}}, log: log}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := f.save(); err != nil {
				return nil, fmt.Errorf("failed to create workspaces file %q: %w", path, err)
			}
			return f, nil
		}
		return nil, fmt.Errorf("failed to read workspaces file %q: %w", path, err)
	}

	if err := toml.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces file %q: %w", path, err)
	}
	if f.data.Workspaces == nil {
		f.data.Workspaces = map[string][]entry{}
	}
	return f, nil
}

// Handles returns the window handles currently stored for id, in the order
// they were recorded.
func (f *File) Handles(id identity.PersistentWorkspaceId) []identity.WindowHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.data.Workspaces[id.Key()]
	out := make([]identity.WindowHandle, len(entries))
	for i, e := range entries {
		out[i] = identity.WindowHandle(e.Handle)
	}
	return out
}

// Add records handle against id, ignoring it if already present, and
// persists the change.
func (f *File) Add(id identity.PersistentWorkspaceId, handle identity.WindowHandle) error {
	f.mu.Lock()
	f.insertLocked(id, handle)
	f.mu.Unlock()
	return f.save()
}

// AddAll records every handle in windows against id and persists the
// change.
func (f *File) AddAll(id identity.PersistentWorkspaceId, windows []window.Window) error {
	f.mu.Lock()
	for _, w := range windows {
		f.insertLocked(id, w.Handle)
	}
	f.mu.Unlock()
	return f.save()
}

func (f *File) insertLocked(id identity.PersistentWorkspaceId, handle identity.WindowHandle) {
	key := id.Key()
	for _, e := range f.data.Workspaces[key] {
		if identity.WindowHandle(e.Handle) == handle {
			return
		}
	}
	f.data.Workspaces[key] = append(f.data.Workspaces[key], entry{Handle: uint32(handle)})
}

// RemoveWorkspace deletes id and every handle recorded against it, then
// persists the change.
func (f *File) RemoveWorkspace(id identity.PersistentWorkspaceId) error {
	f.mu.Lock()
	delete(f.data.Workspaces, id.Key())
	f.mu.Unlock()
	return f.save()
}

// RemoveAllExcluding removes every handle in windows from every workspace
// other than keep, enforcing the "a window belongs to at most one
// workspace" invariant after a move. keep itself is left untouched, even if
// it contains one of the handles.
func (f *File) RemoveAllExcluding(keep identity.PersistentWorkspaceId, windows []window.Window) error {
	remove := make(map[identity.WindowHandle]bool, len(windows))
	for _, w := range windows {
		remove[w.Handle] = true
	}

	f.mu.Lock()
	keepKey := keep.Key()
	for key, entries := range f.data.Workspaces {
		if key == keepKey {
			continue
		}
		kept := entries[:0:0]
		for _, e := range entries {
			if !remove[identity.WindowHandle(e.Handle)] {
				kept = append(kept, e)
			}
		}
		f.data.Workspaces[key] = kept
	}
	f.mu.Unlock()
	return f.save()
}

// Clear removes every workspace and persists the change.
func (f *File) Clear() error {
	f.mu.Lock()
	f.data.Workspaces = map[string][]entry{}
	f.mu.Unlock()
	return f.save()
}

// save rewrites the whole file. Called with f.mu released.
func (f *File) save() error {
	f.mu.Lock()
	data, err := toml.Marshal(f.data)
	f.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to encode workspaces file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create workspaces file directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workspaces file %q: %w", f.path, err)
	}
	if f.log != nil {
		f.log.Debug("saved workspaces file", "path", f.path)
	}
	return nil
}

// keys returns the workspace keys currently recorded, sorted, for callers
// (and tests) that need deterministic iteration.
func (f *File) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.data.Workspaces))
	for k := range f.data.Workspaces {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
