package network

import "sync"

// Storage holds versioned evaluator checkpoints shared between the training
// loop (single writer) and the selfplay actors (many readers). Saved networks
// are treated as immutable snapshots.
type Storage struct {
	mu          sync.RWMutex
	networks    map[int]Network
	latest      int
	actionSpace int
}

func NewStorage(actionSpace int) *Storage {
	return &Storage{
		networks:    make(map[int]Network),
		actionSpace: actionSpace,
	}
}

// LatestNetwork returns the highest-step checkpoint, or a fresh uniform
// network before the first checkpoint. Actors may observe a stale snapshot;
// that is tolerated by design.
func (s *Storage) LatestNetwork() Network {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.networks) == 0 {
		return NewUniform(s.actionSpace)
	}
	return s.networks[s.latest]
}

func (s *Storage) SaveNetwork(step int, net Network) {
	if net == nil {
		panic("network: cannot save a nil network")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks[step] = net
	if step >= s.latest {
		s.latest = step
	}
}

// Checkpoints returns the number of saved checkpoints.
func (s *Storage) Checkpoints() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.networks)
}
