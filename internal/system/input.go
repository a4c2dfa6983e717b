package system

import (
	"time"

	"github.com/pgeditor/editor/internal/core/event"
	coresys "github.com/pgeditor/editor/internal/core/system"
	"go.uber.org/zap"
)

// InputSystem drains the command queue fed by the console goroutine and posts
// the events onto the bus. Phase 0 (Input).
type InputSystem struct {
	queue      <-chan any
	bus        *event.Bus
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(queue <-chan any, bus *event.Bus, maxPerTick int, log *zap.Logger) *InputSystem {
	if maxPerTick <= 0 {
		maxPerTick = 1
	}
	return &InputSystem{
		queue:      queue,
		bus:        bus,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case ev, ok := <-s.queue:
			if !ok {
				return
			}
			s.bus.Post(ev)
		default:
			return
		}
	}
	s.log.Debug("command queue backlog, continuing next tick", zap.Int("per_tick", s.maxPerTick))
}
