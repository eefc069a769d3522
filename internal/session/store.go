// Package session holds uploaded document batches with time-bounded
// automatic eviction.
package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"pdf-search-server/internal/domain"

	"github.com/google/uuid"
)

// defaultSweepInterval bounds how stale an expired session can get before
// the background sweeper reclaims it. Expiry is also checked lazily on Get,
// so a sweep delay never makes an expired session visible.
const defaultSweepInterval = time.Minute

// Store implements domain.SessionStore. Sessions are kept in memory only; a
// process restart loses them all, together with their uploaded bytes'
// usefulness. Eviction removes the mapping entry and deletes every stored
// file.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.UploadSession

	ttl    time.Duration
	logger domain.Logger

	// now is injectable so tests can force expiry without waiting.
	now        func() time.Time
	sweepEvery time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewStore creates a new session store with the given TTL.
func NewStore(ttl time.Duration, logger domain.Logger) *Store {
	return &Store{
		sessions:   make(map[string]*domain.UploadSession),
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		sweepEvery: defaultSweepInterval,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Create stores a new session for the given documents and returns its
// identifier. The identifier combines a nanosecond timestamp with a random
// component so live sessions cannot collide.
func (s *Store) Create(documents []domain.DocumentLocation) (string, error) {
	createdAt := s.now()
	id := fmt.Sprintf("%d-%s", createdAt.UnixNano(), uuid.New().String())

	docs := make([]domain.DocumentLocation, len(documents))
	copy(docs, documents)

	s.mu.Lock()
	s.sessions[id] = &domain.UploadSession{
		ID:        id,
		Documents: docs,
		CreatedAt: createdAt,
	}
	s.mu.Unlock()

	s.logger.Info("Session created", "session_id", id, "documents", len(docs), "ttl", s.ttl)
	return id, nil
}

// Get returns the session's document list, or ErrSessionNotFound if the
// session never existed or has expired. Expiry is checked against the clock
// on every access, so an expired session is unreachable even before the
// sweeper runs.
func (s *Store) Get(sessionID string) ([]domain.DocumentLocation, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(sess) {
		// Reclaim eagerly rather than waiting for the sweeper.
		_ = s.Delete(sessionID)
		return nil, domain.ErrSessionNotFound
	}

	docs := make([]domain.DocumentLocation, len(sess.Documents))
	copy(docs, sess.Documents)
	return docs, nil
}

// Delete evicts a session and deletes every document's stored bytes. The
// mapping entry is removed under the lock before storage cleanup, so no
// caller can observe the session after its storage starts disappearing.
func (s *Store) Delete(sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	s.releaseStorage(sess)
	s.logger.Info("Session evicted", "session_id", sessionID, "documents", len(sess.Documents))
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Start launches the background sweeper. Stop must be called on shutdown.
func (s *Store) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper and waits for it to exit.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Sweep evicts every expired session. Exported so tests (and shutdown paths)
// can trigger eviction deterministically.
func (s *Store) Sweep() int {
	s.mu.Lock()
	var expired []*domain.UploadSession
	for id, sess := range s.sessions {
		if s.expired(sess) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		s.releaseStorage(sess)
		s.logger.Info("Session expired", "session_id", sess.ID, "documents", len(sess.Documents))
	}
	return len(expired)
}

func (s *Store) expired(sess *domain.UploadSession) bool {
	return s.now().Sub(sess.CreatedAt) >= s.ttl
}

func (s *Store) releaseStorage(sess *domain.UploadSession) {
	for _, doc := range sess.Documents {
		if err := os.Remove(doc.StoragePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to delete stored file", "path", doc.StoragePath, "error", err)
		}
	}
}
