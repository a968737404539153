package config

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// ConnectionNotifier learns about connectivity changes.
type ConnectionNotifier interface {
	BroadcastConnectionChanged(connected bool)
}

// ConnectionService holds the "backend connected" switch every mutation
// consults before mirroring to the backend.
type ConnectionService struct {
	connected atomic.Bool
	notifier  ConnectionNotifier
	logger    *zap.Logger
}

func NewConnectionService(initial bool, notifier ConnectionNotifier, logger *zap.Logger) *ConnectionService {
	s := &ConnectionService{notifier: notifier, logger: logger}
	s.connected.Store(initial)
	return s
}

func (s *ConnectionService) Connected() bool {
	return s.connected.Load()
}

// Set flips the switch and reports whether it changed.
func (s *ConnectionService) Set(connected bool) bool {
	if s.connected.Swap(connected) == connected {
		return false
	}
	s.logger.Info("backend connectivity changed", zap.Bool("connected", connected))
	if s.notifier != nil {
		s.notifier.BroadcastConnectionChanged(connected)
	}
	return true
}
