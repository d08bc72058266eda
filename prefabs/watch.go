package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a watched file.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota + 1
	ChangeScript
	ChangeLevel
)

// Change is a debounced file modification.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to prefab, script and level files. Bursts of events
// for the same file inside the debounce window collapse into one Change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Changes  chan Change
	Errors   chan error
	debounce time.Duration
	closeCh  chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

// Poll drains pending changes without blocking.
func (w *Watcher) Poll() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.Changes:
			if !ok {
				return out
			}
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()
	pending := newDebouncer(w.debounce)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind := classify(event.Name)
			if kind == 0 {
				continue
			}
			pending.add(event.Name, kind, time.Now())
			if fire == nil {
				timer.Reset(w.debounce)
				fire = timer.C
			}
		case <-fire:
			fire = nil
			ready, wait := pending.flush(time.Now())
			for _, c := range ready {
				select {
				case w.Changes <- c:
				case <-w.closeCh:
					return
				}
			}
			if wait > 0 {
				timer.Reset(wait)
				fire = timer.C
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

// debouncer holds one pending change per path and releases it once the path
// has been quiet for the whole window, so a truncate followed by a write is
// reported once, after the write.
type debouncer struct {
	window time.Duration
	due    map[string]time.Time
	kinds  map[string]ChangeKind
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		due:    make(map[string]time.Time),
		kinds:  make(map[string]ChangeKind),
	}
}

func (d *debouncer) add(path string, kind ChangeKind, now time.Time) {
	d.due[path] = now.Add(d.window)
	d.kinds[path] = kind
}

// flush returns the changes that are due at now, sorted by path, and how long
// until the next pending one is due (0 when none is left).
func (d *debouncer) flush(now time.Time) ([]Change, time.Duration) {
	var ready []Change
	var next time.Duration
	for path, at := range d.due {
		if wait := at.Sub(now); wait > 0 {
			if next == 0 || wait < next {
				next = wait
			}
			continue
		}
		ready = append(ready, Change{Path: path, Kind: d.kinds[path]})
		delete(d.due, path)
		delete(d.kinds, path)
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].Path < ready[j].Path })
	return ready, next
}

func classify(path string) ChangeKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".tengo":
		return ChangeScript
	case ".yaml", ".yml":
		if strings.Contains(filepath.ToSlash(path), "levels/") {
			return ChangeLevel
		}
		return ChangeSpec
	}
	return 0
}
