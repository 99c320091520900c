package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// LoadFixture reads a JSON fixture stored next to this file.
func LoadFixture(filename string) (json.RawMessage, error) {
	_, currentFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(currentFile)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// MustLoadFixture is LoadFixture for test setup.
func MustLoadFixture(filename string) json.RawMessage {
	data, err := LoadFixture(filename)
	if err != nil {
		panic(err)
	}
	return data
}
