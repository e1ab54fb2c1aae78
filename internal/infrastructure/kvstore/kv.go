// Package kvstore implementa la persistencia del sistema sobre un almacén
// clave-valor plano: cada colección vive serializada en JSON bajo una clave
// con nombre. Es almacenamiento puro: sin validación, sin filtrado de tenant
// (eso vive en la capa de acceso y en las lecturas scoped de los repos).
//
// Las escrituras son reemplazos completos de colección, last-write-wins. No
// hay merge ni versionado: el modelo asume una sesión activa por archivo de
// almacenamiento, igual que un perfil de navegador.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Claves de las colecciones y de los slots de sesión.
const (
	KeyUsers       = "sales_app_users"
	KeyProducts    = "sales_app_products"
	KeyCustomers   = "sales_app_customers"
	KeySales       = "sales_app_sales"
	KeyStores      = "sales_app_stores"
	KeySessionUser = "sales_app_user"
	KeyActiveStore = "sales_app_active_store"
)

// KV es el contrato mínimo del almacén: get/set/delete de bytes crudos.
// Una clave ausente devuelve ok=false sin error; el que lee decide el default.
type KV interface {
	Get(key string) (raw []byte, ok bool, err error)
	Set(key string, raw []byte) error
	Delete(key string) error
}

// MemoryKV es el adaptador en memoria, para tests y entornos efímeros.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV construye un almacén en memoria vacío.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (m *MemoryKV) Set(key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(raw))
	copy(cp, raw)
	m.data[key] = cp
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FileKV persiste el mapa completo en un único archivo JSON, write-through con
// rename atómico. Es el análogo local del localStorage del sistema original.
type FileKV struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

// OpenFileKV abre (o crea) el archivo de almacenamiento y carga su contenido.
// Un archivo inexistente arranca vacío; uno ilegible es falla ambiental.
func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento %s: %w", path, err)
	}
	if len(raw) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(raw, &kv.data); err != nil {
		return nil, fmt.Errorf("almacenamiento %s ilegible: %w", path, err)
	}
	return kv, nil
}

func (f *FileKV) Get(key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	raw, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (f *FileKV) Set(key string, raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	f.data[key] = cp
	return f.persistLocked()
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.persistLocked()
}

// persistLocked escribe el mapa completo a un archivo temporal y lo renombra
// sobre el definitivo. Requiere f.mu tomado en escritura.
func (f *FileKV) persistLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar almacenamiento: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de almacenamiento: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir almacenamiento: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("reemplazar almacenamiento: %w", err)
	}
	return nil
}
