package middleware

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

const msgIdempotencyKeyReused = "idempotency key already used with a different request body"

// IdempotencyStore stores idempotency key results
type IdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type idempotencyEntry struct {
	fingerprint string
	status      int
	headers     http.Header
	body        []byte
	expiresAt   time.Time
	inFlight    bool
	done        chan struct{}
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long to keep results (default 24h)
	Cleanup time.Duration // Cleanup interval (default 1h)
}

// NewIdempotencyStore creates a new idempotency store
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go store.cleanupLoop(cfg.Cleanup)

	return store
}

// Stop stops the cleanup goroutine
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *IdempotencyStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if !entry.inFlight && entry.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// scopeKey binds an idempotency key to the caller and route.
func scopeKey(caller, idempotencyKey, method, path string) string {
	h, _ := blake2b.New256(nil)
	for _, part := range []string{caller, idempotencyKey, method, path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fingerprint(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// cacheable reports whether a response should be replayed. Throttled and
// server-side failures are left out so the client can retry with the same key.
func cacheable(status int) bool {
	return status < http.StatusInternalServerError && status != http.StatusTooManyRequests
}

// idempotencyResponseWriter captures the response for caching
type idempotencyResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *idempotencyResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func replay(w http.ResponseWriter, entry *idempotencyEntry) {
	for k, v := range entry.headers {
		if k == "X-Request-Id" {
			continue
		}
		w.Header()[k] = append([]string(nil), v...)
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that replays the first response for a
// repeated Idempotency-Key. Reusing a key with a different body is a 409.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get("Idempotency-Key")
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller := GetUserID(r.Context())
			if caller == "" {
				caller = GetClientIP(r)
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := scopeKey(caller, idempotencyKey, r.Method, r.URL.Path)
			fp := fingerprint(body)

			var entry *idempotencyEntry
			for {
				store.mu.Lock()
				existing, ok := store.entries[key]
				if !ok || (!existing.inFlight && existing.expiresAt.Before(store.now())) {
					entry = &idempotencyEntry{fingerprint: fp, inFlight: true, done: make(chan struct{})}
					store.entries[key] = entry
					store.mu.Unlock()
					break
				}
				inFlight, done := existing.inFlight, existing.done
				store.mu.Unlock()

				if existing.fingerprint != fp {
					model.NewConflictError(msgIdempotencyKeyReused).WriteJSON(w)
					return
				}

				if !inFlight {
					replay(w, existing)
					return
				}

				select {
				case <-done:
				case <-r.Context().Done():
					return
				}
			}

			irw := &idempotencyResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(irw, r)

			store.mu.Lock()
			if cacheable(irw.status) {
				entry.status = irw.status
				entry.headers = irw.Header().Clone()
				entry.body = irw.body.Bytes()
				entry.expiresAt = store.now().Add(store.ttl)
				entry.inFlight = false
			} else {
				delete(store.entries, key)
			}
			close(entry.done)
			store.mu.Unlock()
		})
	}
}
