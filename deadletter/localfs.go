package deadletter

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"
)

// FS is a filesystem-backed Archive.
//
// Objects are stored immutably and keyed strictly by CID; a re-archived
// envelope lands on its existing file.
type FS struct {
	root string
}

// NewFS constructs an Archive rooted at root. The directory is created if needed.
func NewFS(root string) (*FS, error) {
	if root == "" {
		return nil, errors.New("deadletter: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FS{root: root}, nil
}

func (f *FS) Put(envelope []byte) (cid.Cid, error) {
	id, err := CID(envelope)
	if err != nil {
		return cid.Undef, err
	}

	path := f.pathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			// Identical content by construction: the key is the hash.
			return id, nil
		}
		return cid.Undef, err
	}
	defer file.Close()

	if _, err := file.Write(envelope); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	return id, nil
}

func (f *FS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	b, err := os.ReadFile(f.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	got, err := CID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, ErrInvalidCID
	}
	return b, nil
}

func (f *FS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(f.pathFor(id))
	return err == nil
}

func (f *FS) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(f.root, s)
	}
	return filepath.Join(f.root, s[:2], s)
}
