package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/source"
)

// diskCacheSchemaVersion invalidates old payloads when the format
// changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores lowered-unit artifacts keyed by source content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiagPayload is one cached diagnostic.
type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// DiskPayload is the cached outcome of lowering one file. The IR itself
// is not serialized; the rendered dump plus the diagnostics are enough
// for the CLI to answer without re-lowering an unchanged file.
type DiskPayload struct {
	Schema    uint16
	Path      string
	Dump      string
	Diags     []DiagPayload
	HasErrors bool
}

// OpenDiskCache initializes a disk cache at dir, or at the standard
// user cache location when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "units", hex.EncodeToString(key[:])+".mp")
}

// Put writes a payload atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The boolean reports a usable hit; a payload with
// a stale schema counts as a miss.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// cacheLookup converts a cache hit into a FileResult.
func cacheLookup(c *DiskCache, file *source.File) (FileResult, bool) {
	if c == nil || file == nil {
		return FileResult{}, false
	}
	var payload DiskPayload
	hit, err := c.Get(file.Hash, &payload)
	if err != nil || !hit {
		return FileResult{}, false
	}
	bag := diag.NewBag(len(payload.Diags) + 1)
	for _, d := range payload.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file.ID, Start: d.Start, End: d.End},
		})
	}
	return FileResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    bag,
		Cached: true,
		Dump:   payload.Dump,
	}, true
}

// cacheStore writes a finished result back to the cache and fills the
// result's Dump so cached and fresh runs print identically.
func cacheStore(c *DiskCache, file *source.File, res *FileResult) {
	if res == nil {
		return
	}
	if res.Unit != nil {
		var sb strings.Builder
		if err := ir.Dump(&sb, res.Unit); err == nil {
			res.Dump = sb.String()
		}
	}
	if c == nil || file == nil {
		return
	}
	payload := DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Path:      file.Path,
		Dump:      res.Dump,
		HasErrors: res.Bag.HasErrors(),
	}
	for _, d := range res.Bag.Items() {
		payload.Diags = append(payload.Diags, DiagPayload{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	// cache write failures are non-fatal
	_ = c.Put(file.Hash, &payload)
}
