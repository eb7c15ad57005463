// Package json implements the storage registry over plain JSON files,
// one document per file, indented so runs and reports stay readable
// in a text editor.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/workline/absenteeism/internal/storage"
)

// Registry writes each document under root/<collection>/<name>.json.
type Registry struct {
	root string
}

func NewRegistry(root string) *Registry {
	return &Registry{root: root}
}

func (r *Registry) Put(key storage.K, value interface{}) error {
	return Save(filepath.Join(r.root, key.Collection), key.Name+".json", value)
}

func (r *Registry) Get(key storage.K, value interface{}) error {
	return Load(filepath.Join(r.root, key.Collection), key.Name+".json", value)
}

// Save writes the value as indented JSON into filePath/fileName,
// creating the directory if needed.
func Save(filePath string, fileName string, value interface{}) error {
	info, err := os.Stat(filePath)
	if err != nil {
		if err := os.MkdirAll(filePath, os.ModePerm); err != nil {
			return fmt.Errorf("could not make dir '%s': %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", filePath)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal '%s': %w", fileName, err)
	}

	p := filepath.Join(filePath, fileName)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load reads the document at filePath/fileName into value.
func Load(filePath string, fileName string, value interface{}) error {
	p := filepath.Join(filePath, fileName)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %w", p, storage.CouldNotLoadErr)
	}
	return nil
}
