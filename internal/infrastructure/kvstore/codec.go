package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/nova-pos/internal/domain"
)

// getCollection decodifica la colección bajo key en dest (puntero a slice).
// Clave ausente deja dest como slice vacío. JSON malformado se reporta como
// ErrCorruptData: nunca se degrada en silencio a colección vacía.
func getCollection(kv KV, key string, dest any) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("leer %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, key, err)
	}
	return nil
}

// setCollection serializa y reemplaza la colección completa bajo key.
func setCollection(kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := kv.Set(key, raw); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

// getSlot decodifica un slot de objeto único (sesión). Clave ausente → ok=false.
func getSlot(kv KV, key string, dest any) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("leer %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", domain.ErrCorruptData, key, err)
	}
	return true, nil
}

// setSlot serializa un slot de objeto único.
func setSlot(kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := kv.Set(key, raw); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}
