// Package servicetest holds in-process fakes of the service contracts.
package servicetest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/khoahotran/portfolio-api/internal/application/service"
)

var ErrInjected = errors.New("injected failure")

// MediaStore keeps uploads in memory. Set FailStore or FailDelete to make the
// corresponding call return ErrInjected.
type MediaStore struct {
	mu         sync.Mutex
	seq        int
	Objects    map[string]service.ImageFile
	Deleted    []string
	FailStore  bool
	FailDelete bool
	// OnDelete runs before a delete is recorded.
	OnDelete func(handle string)
}

func NewMediaStore() *MediaStore {
	return &MediaStore{Objects: make(map[string]service.ImageFile)}
}

func (m *MediaStore) Store(_ context.Context, file service.ImageFile, folder string) (*service.StoredMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailStore {
		return nil, ErrInjected
	}
	m.seq++
	handle := fmt.Sprintf("%s/img-%d", folder, m.seq)
	m.Objects[handle] = file
	return &service.StoredMedia{
		URL:    "https://media.test/" + handle,
		Handle: handle,
	}, nil
}

func (m *MediaStore) Delete(_ context.Context, handle string) error {
	if m.OnDelete != nil {
		m.OnDelete(handle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete {
		return ErrInjected
	}
	delete(m.Objects, handle)
	m.Deleted = append(m.Deleted, handle)
	return nil
}

func (m *MediaStore) Has(handle string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[handle]
	return ok
}

func (m *MediaStore) DeletedHandles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Deleted...)
}

// Publisher records published events.
type Publisher struct {
	mu       sync.Mutex
	Orphaned []service.MediaOrphanedEvent
	Received []service.MessageReceivedEvent
	Fail     bool
}

func (p *Publisher) PublishMediaOrphaned(_ context.Context, e service.MediaOrphanedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail {
		return ErrInjected
	}
	p.Orphaned = append(p.Orphaned, e)
	return nil
}

func (p *Publisher) PublishMessageReceived(_ context.Context, e service.MessageReceivedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail {
		return ErrInjected
	}
	p.Received = append(p.Received, e)
	return nil
}

func (p *Publisher) OrphanedHandles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Orphaned))
	for _, e := range p.Orphaned {
		out = append(out, e.Handle)
	}
	return out
}

func (p *Publisher) ReceivedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Received)
}
