package storage

import (
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// ReceiptStore writes uploaded payment receipts to a filesystem. The
// billy abstraction keeps the prod store (a directory on disk) and the
// test store (in-memory) behind the same interface.
type ReceiptStore struct {
	fs billy.Filesystem
}

func NewOSStore(dir string) *ReceiptStore {
	return &ReceiptStore{fs: osfs.New(dir)}
}

func NewMemStore() *ReceiptStore {
	return &ReceiptStore{fs: memfs.New()}
}

func (s *ReceiptStore) Save(name string, src io.Reader) error {
	f, err := s.fs.Create(name)
	if err != nil {
		return fmt.Errorf("create receipt file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return fmt.Errorf("write receipt file: %w", err)
	}
	return f.Close()
}

func (s *ReceiptStore) Open(name string) (io.ReadCloser, error) {
	return s.fs.Open(name)
}
