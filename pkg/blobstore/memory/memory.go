// Package memory implements an in-process blobstore.Store.
//
// It backs tests and local development; listing order is lexicographic by
// key, matching the behaviour of the real backends closely enough for the
// hierarchy layers above.
package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/seaward/blobtree/pkg/blobstore"
)

type object struct {
	data         []byte
	contentType  string
	cacheControl string
	createdAt    time.Time
	modifiedAt   time.Time
}

type container struct {
	access  blobstore.PublicAccess
	created time.Time
	objects map[string]*object
}

// Store is a map-backed blobstore.Store. The zero value is not usable; use
// New.
type Store struct {
	mu         sync.RWMutex
	containers map[string]*container
	now        func() time.Time
}

var _ blobstore.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		containers: make(map[string]*container),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Backend identifies the implementation.
func (s *Store) Backend() blobstore.Backend { return blobstore.BackendMemory }

func (s *Store) wrap(op, cont, key string, err error) error {
	return &blobstore.StoreError{Op: op, Backend: blobstore.BackendMemory, Container: cont, Key: key, Err: err}
}

// EnsureContainer creates the container if absent.
func (s *Store) EnsureContainer(_ context.Context, name string, access blobstore.PublicAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.containers[name]; !ok {
		s.containers[name] = &container{
			access:  access,
			created: s.now(),
			objects: make(map[string]*object),
		}
	}
	return nil
}

// ContainerExists reports whether the container exists.
func (s *Store) ContainerExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.containers[name]
	return ok, nil
}

// DeleteContainer removes the container and all of its objects.
func (s *Store) DeleteContainer(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.containers, name)
	return nil
}

// GetProperties returns object metadata.
func (s *Store) GetProperties(_ context.Context, cont, key string) (*blobstore.Properties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[cont]
	if !ok {
		return nil, s.wrap("GetProperties", cont, key, blobstore.ErrContainerNotFound)
	}
	o, ok := c.objects[key]
	if !ok {
		return nil, s.wrap("GetProperties", cont, key, blobstore.ErrNotFound)
	}
	return &blobstore.Properties{
		Key:         key,
		ContentType: o.contentType,
		Size:        int64(len(o.data)),
		CreatedAt:   o.createdAt,
		ModifiedAt:  o.modifiedAt,
	}, nil
}

// OpenRead opens the object for reading.
func (s *Store) OpenRead(_ context.Context, cont, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[cont]
	if !ok {
		return nil, s.wrap("OpenRead", cont, key, blobstore.ErrContainerNotFound)
	}
	o, ok := c.objects[key]
	if !ok {
		return nil, s.wrap("OpenRead", cont, key, blobstore.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(o.data)), nil
}

// Upload creates or overwrites the object. The container is created
// implicitly, mirroring how the Azure facade is always preceded by an
// EnsureContainer call on the write path.
func (s *Store) Upload(_ context.Context, cont, key string, body io.Reader, opts blobstore.UploadOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return s.wrap("Upload", cont, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[cont]
	if !ok {
		c = &container{access: blobstore.PublicAccessNone, created: s.now(), objects: make(map[string]*object)}
		s.containers[cont] = c
	}
	now := s.now()
	created := now
	if prev, ok := c.objects[key]; ok {
		created = prev.createdAt
	}
	c.objects[key] = &object{
		data:         data,
		contentType:  opts.ContentType,
		cacheControl: opts.CacheControl,
		createdAt:    created,
		modifiedAt:   now,
	}
	return nil
}

// Copy duplicates an object, backend-side.
func (s *Store) Copy(_ context.Context, srcCont, srcKey, dstCont, dstKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.containers[srcCont]
	if !ok {
		return s.wrap("Copy", srcCont, srcKey, blobstore.ErrContainerNotFound)
	}
	src, ok := sc.objects[srcKey]
	if !ok {
		return s.wrap("Copy", srcCont, srcKey, blobstore.ErrNotFound)
	}
	dc, ok := s.containers[dstCont]
	if !ok {
		return s.wrap("Copy", dstCont, dstKey, blobstore.ErrContainerNotFound)
	}
	now := s.now()
	dc.objects[dstKey] = &object{
		data:         append([]byte(nil), src.data...),
		contentType:  src.contentType,
		cacheControl: src.cacheControl,
		createdAt:    now,
		modifiedAt:   now,
	}
	return nil
}

// Delete removes the object, reporting whether it existed.
func (s *Store) Delete(_ context.Context, cont, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.containers[cont]
	if !ok {
		return false, nil
	}
	if _, ok := c.objects[key]; !ok {
		return false, nil
	}
	delete(c.objects, key)
	return true, nil
}

// ListFlat streams all objects under prefix in lexicographic key order.
func (s *Store) ListFlat(_ context.Context, cont, prefix string, fn func(blobstore.Item) error) error {
	s.mu.RLock()
	c, ok := s.containers[cont]
	if !ok {
		s.mu.RUnlock()
		return nil
	}
	items := make([]blobstore.Item, 0, len(c.objects))
	for key, o := range c.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		items = append(items, blobstore.Item{
			Key:         key,
			ContentType: o.contentType,
			Size:        int64(len(o.data)),
			CreatedAt:   o.createdAt,
			ModifiedAt:  o.modifiedAt,
		})
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	for _, it := range items {
		if err := fn(it); err != nil {
			return err
		}
	}
	return nil
}

// ListHierarchy groups keys under prefix by delimiter into direct items
// and immediate child prefixes.
func (s *Store) ListHierarchy(ctx context.Context, cont, prefix, delimiter string) (*blobstore.HierarchyListing, error) {
	listing := &blobstore.HierarchyListing{}
	seen := make(map[string]struct{})
	err := s.ListFlat(ctx, cont, prefix, func(it blobstore.Item) error {
		rest := strings.TrimPrefix(it.Key, prefix)
		if idx := strings.Index(rest, delimiter); idx >= 0 {
			child := prefix + rest[:idx+len(delimiter)]
			if _, ok := seen[child]; !ok {
				seen[child] = struct{}{}
				listing.Prefixes = append(listing.Prefixes, child)
			}
			return nil
		}
		listing.Items = append(listing.Items, it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// ListContainers returns the containers whose name starts with prefix, in
// lexicographic order.
func (s *Store) ListContainers(_ context.Context, prefix string) ([]blobstore.ContainerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []blobstore.ContainerEntry
	for name, c := range s.containers {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		entries = append(entries, blobstore.ContainerEntry{Name: name, ModifiedAt: c.created})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Close satisfies blobstore.Store.
func (s *Store) Close() error { return nil }

// Keys returns every key in the container, sorted. Test helper.
func (s *Store) Keys(cont string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[cont]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(c.objects))
	for k := range c.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Access returns the access policy the container was created with. Test
// helper.
func (s *Store) Access(cont string) (blobstore.PublicAccess, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.containers[cont]
	if !ok {
		return "", false
	}
	return c.access, true
}
