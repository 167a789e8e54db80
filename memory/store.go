// Package memory provides an in-memory ObjectStore. It backs tests and local
// experimentation; nothing about it survives a restart.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pacbucket/pacbucket"
)

type object struct {
	data        []byte
	contentType string
}

// Store holds objects in a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{objects: make(map[string]object)}
}

// Put stores data under key with the given content type, replacing any
// existing object. The byte slice is copied.
func (s *Store) Put(key string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: bytes.Clone(data), contentType: contentType}
}

// Stat returns the metadata of an object. Returns pacbucket.ErrNotFound if
// the key is absent.
func (s *Store) Stat(ctx context.Context, key string) (pacbucket.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return pacbucket.ObjectInfo{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return pacbucket.ObjectInfo{}, pacbucket.ErrNotFound
	}

	return pacbucket.ObjectInfo{Key: key, Size: int64(len(obj.data)), ContentType: obj.contentType}, nil
}

// ReadRange returns the inclusive byte range [start, end] of an object.
func (s *Store) ReadRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, pacbucket.ErrNotFound
	}

	size := int64(len(obj.data))
	if start < 0 || start > end || end >= size {
		return nil, fmt.Errorf("read range [%d, %d] of %d byte object: %w", start, end, size, pacbucket.ErrInvalidInput)
	}

	return io.NopCloser(bytes.NewReader(obj.data[start : end+1])), nil
}

// List returns the objects whose keys begin with prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]pacbucket.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]pacbucket.ObjectInfo, 0, len(s.objects))
	for key, obj := range s.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		infos = append(infos, pacbucket.ObjectInfo{Key: key, Size: int64(len(obj.data)), ContentType: obj.contentType})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Delete removes an object. Returns pacbucket.ErrNotFound if the key is absent.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return pacbucket.ErrNotFound
	}

	delete(s.objects, key)
	return nil
}
