package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stevemurr/market/model"
)

// JsonFileBackend stores each collection as a separate JSON document on disk.
//
// Layout:
//
//	dir/
//	  client.json    # {"<id>": {"name", "surname", "balance"}}
//	  product.json   # {"<id>": {"name", "price", "stock"}}
type JsonFileBackend struct {
	dir          string
	clientsFile  string
	productsFile string
}

func NewJsonFileBackend(dir, clientsFile, productsFile string) (*JsonFileBackend, error) {
	if clientsFile == "" || productsFile == "" {
		return nil, errors.New("json backend needs a file name for both collections")
	}
	if clientsFile == productsFile {
		return nil, fmt.Errorf("json backend collections share the file %q", clientsFile)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &JsonFileBackend{dir: dir, clientsFile: clientsFile, productsFile: productsFile}, nil
}

// ClientsPath returns the location of the client document.
func (b *JsonFileBackend) ClientsPath() string {
	return filepath.Join(b.dir, b.clientsFile)
}

// ProductsPath returns the location of the product document.
func (b *JsonFileBackend) ProductsPath() string {
	return filepath.Join(b.dir, b.productsFile)
}

func loadFile[T any](path string) (map[uint32]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[uint32]T{}, nil
		}
		return nil, err
	}
	var result map[uint32]T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if result == nil {
		result = map[uint32]T{}
	}
	return result, nil
}

// saveFile writes data next to path and renames it into place, so a crash
// leaves either the old or the new document.
func saveFile(path string, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (b *JsonFileBackend) LoadClients() (map[uint32]model.Client, error) {
	return loadFile[model.Client](b.ClientsPath())
}

func (b *JsonFileBackend) LoadProducts() (map[uint32]model.Product, error) {
	return loadFile[model.Product](b.ProductsPath())
}

func (b *JsonFileBackend) SaveClients(clients map[uint32]model.Client) error {
	return saveFile(b.ClientsPath(), clients)
}

func (b *JsonFileBackend) SaveProducts(products map[uint32]model.Product) error {
	return saveFile(b.ProductsPath(), products)
}

func (b *JsonFileBackend) Close() error {
	return nil
}
