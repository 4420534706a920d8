package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

var errStorageUnavailable = errors.New("storage unavailable")

// fakeKV is an in-memory KeyValueStore with failure injection.
type fakeKV struct {
	mu      sync.Mutex
	m       map[string][]byte
	failing bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{m: make(map[string][]byte)}
}

func (kv *fakeKV) Load(key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failing {
		return nil, errStorageUnavailable
	}
	v, ok := kv.m[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (kv *fakeKV) Store(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failing {
		return errStorageUnavailable
	}
	kv.m[key] = value
	return nil
}

func (kv *fakeKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failing {
		return errStorageUnavailable
	}
	delete(kv.m, key)
	return nil
}

// stubCatalog serves a fixed product list.
type stubCatalog struct {
	ps []domain.Product
}

func (c stubCatalog) Product(_ context.Context, id string) (domain.Product, error) {
	for _, p := range c.ps {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

func (c stubCatalog) Products(context.Context) ([]domain.Product, error) {
	return c.ps, nil
}

// recordingProducer captures emitted client events.
type recordingProducer struct {
	mu     sync.Mutex
	events []domain.ClientEvent
	err    error
}

func (p *recordingProducer) ProduceEvent(_ context.Context, e domain.ClientEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingProducer) kinds() []domain.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	ks := make([]domain.EventKind, 0, len(p.events))
	for _, e := range p.events {
		ks = append(ks, e.Kind)
	}
	return ks
}

var _ port.EventsProducer = (*recordingProducer)(nil)
