package vm

import (
	"os"

	"github.com/tliron/commonlog"
)

var fileLog = commonlog.GetLogger("knoten.file")

// ---------------------------------------------------------------------------
// File resources
// ---------------------------------------------------------------------------

// fileResource owns one write-only descriptor. The descriptor closes
// when the entry is removed.
type fileResource struct {
	file *os.File
	path string
}

func (*fileResource) ResourceKind() ResourceKind { return ResourceFile }

// CreateFile opens path for writing, truncating any existing content,
// and returns a handle. On failure it logs, inserts nothing, consumes
// no id, and returns -1.
func (r *Registry) CreateFile(path string) int64 {
	f, err := os.Create(path)
	if err != nil {
		fileLog.Errorf("create %s: %v", path, err)
		return InvalidHandle
	}
	return r.insert(&fileResource{file: f, path: path})
}

// FileWrite appends content to the file. I/O failures are logged but
// never fault the caller; a missing or wrong-kind handle is a logged
// no-op.
func (r *Registry) FileWrite(id int64, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.lookupLocked("file_write", id, ResourceFile)
	if res == nil {
		return
	}
	fr := res.(*fileResource)
	if _, err := fr.file.WriteString(content); err != nil {
		fileLog.Errorf("write to %s (handle %d): %v", fr.path, id, err)
	}
}
