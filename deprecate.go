package chrono

import (
	"log/slog"
	"sync"
)

// deprecationSink reports legacy or non-portable usage. The handler sees
// every occurrence; the logger sees each warning name once.
type deprecationSink struct {
	mu         sync.Mutex
	seen       map[string]struct{}
	logger     *slog.Logger
	handler    func(name, msg string)
	suppressed bool
}

func newDeprecationSink(logger *slog.Logger, handler func(name, msg string), suppressed bool) *deprecationSink {
	return &deprecationSink{
		seen:       make(map[string]struct{}),
		logger:     logger,
		handler:    handler,
		suppressed: suppressed,
	}
}

func (s *deprecationSink) warn(name, msg string) {
	if s == nil || s.suppressed {
		return
	}
	if s.handler != nil {
		s.handler(name, msg)
	}

	s.mu.Lock()
	_, dup := s.seen[name]
	s.seen[name] = struct{}{}
	s.mu.Unlock()

	if dup || s.logger == nil {
		return
	}
	s.logger.Warn("chrono deprecation", slog.String("name", name), slog.String("detail", msg))
}
