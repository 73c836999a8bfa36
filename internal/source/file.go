package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/logtail"
)

// File follows a file like tail -F: it seeds the panel with the last Seed
// lines and then forwards whatever is appended. Truncation restarts from the
// beginning and a replaced file is picked up when it reappears.
type File struct {
	Path string
	// Seed is how many existing lines to load first. Zero or less loads the
	// whole file.
	Seed int
}

// Name implements Source.
func (f File) Name() string {
	return "file:" + f.Path
}

// Run implements Source.
func (f File) Run(ctx context.Context, sink Sink) error {
	path, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", f.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory so rotation and late creation are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	lines, offset, err := logtail.Tail(path, f.Seed)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	if len(lines) > 0 {
		sink.Enqueue(strings.Join(lines, "\n"))
	}

	t := &follower{path: path, offset: offset, sink: sink}
	// Catch anything written between the seed read and the watch taking
	// effect.
	if err := t.readNew(); err != nil {
		return err
	}

	log := pslog.Ctx(ctx).With("path", path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				log.Debug("file replaced", "op", event.Op.String())
				t.reset()
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				if err := t.readNew(); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "err", err)
		}
	}
}

// follower tracks how much of a file has been forwarded. partial holds a
// trailing line that has no newline yet.
type follower struct {
	path    string
	offset  int64
	partial []byte
	sink    Sink
}

func (t *follower) readNew() error {
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", t.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", t.path, err)
	}
	if info.Size() < t.offset {
		t.flushPartial()
		t.offset = 0
	}
	if _, err := file.Seek(t.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", t.path, err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.path, err)
	}
	t.offset += int64(len(data))
	t.forward(data)
	return nil
}

// forward sends every complete line in partial+data as one payload and keeps
// the unterminated remainder.
func (t *follower) forward(data []byte) {
	if len(data) == 0 {
		return
	}
	buf := append(t.partial, data...)
	cut := bytes.LastIndexByte(buf, '\n')
	if cut < 0 {
		t.partial = buf
		return
	}
	t.sink.Enqueue(string(buf[:cut+1]))
	t.partial = append([]byte(nil), buf[cut+1:]...)
}

func (t *follower) flushPartial() {
	if len(t.partial) > 0 {
		t.sink.Enqueue(string(t.partial))
		t.partial = nil
	}
}

func (t *follower) reset() {
	t.flushPartial()
	t.offset = 0
}
