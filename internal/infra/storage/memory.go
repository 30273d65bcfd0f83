package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory keeps objects in a map. It backs local development without a
// bucket and the handler tests. Public URLs only resolve when the server
// mounts uploads.ServeMemory under BaseURL.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memObject
	BaseURL string
}

type memObject struct {
	data        []byte
	contentType string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{objects: make(map[string]memObject), BaseURL: baseURL}
}

func (m *Memory) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = memObject{data: buf.Bytes(), contentType: contentType}
	m.mu.Unlock()
	return m.PublicURL(key), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

func (m *Memory) Get(key string) ([]byte, bool) {
	b, _, ok := m.Object(key)
	return b, ok
}

// Object returns the stored bytes with the content type given to Put.
func (m *Memory) Object(key string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	return o.data, o.contentType, ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
