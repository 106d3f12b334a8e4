package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// DefaultCacheSize is how many responses a CachingService keeps.
const DefaultCacheSize = 32

// CachingService remembers successful responses by the content hash of the
// request, so converting the same description twice costs one call.
// Failures are never cached.
type CachingService struct {
	next   Service
	size   int
	logger *zap.Logger

	mu    sync.Mutex
	order []string
	byKey map[string]*Response
}

// NewCachingService wraps next. A size below one uses DefaultCacheSize.
func NewCachingService(next Service, size int, logger *zap.Logger) *CachingService {
	if size < 1 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingService{
		next:   next,
		size:   size,
		logger: logger,
		byKey:  make(map[string]*Response, size),
	}
}

// Convert implements Service.
func (s *CachingService) Convert(ctx context.Context, req Request) (*Response, error) {
	key := RequestHash(req)

	s.mu.Lock()
	cached, ok := s.byKey[key]
	s.mu.Unlock()
	if ok {
		s.logger.Debug("conversion cache hit", zap.String("hash", key))
		return cached, nil
	}

	resp, err := s.next.Convert(ctx, req)
	if err != nil || resp == nil || resp.BPMN == "" {
		return resp, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byKey[key]; !ok {
		s.order = append(s.order, key)
		if len(s.order) > s.size {
			delete(s.byKey, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.byKey[key] = resp
	return resp, nil
}

// Len is the number of cached responses.
func (s *CachingService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

// RequestHash is the hex SHA-256 of the request's canonical JSON encoding.
func RequestHash(req Request) string {
	data, err := json.Marshal(req)
	if err != nil {
		panic("failed to marshal request: " + err.Error())
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
