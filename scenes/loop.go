package scenes

import (
	"log"
	"time"
)

// GameLoop calls step at a fixed rate until step returns false or Stop is
// called. Every step advances the simulation by exactly one tick delta,
// however late the ticker fires.
type GameLoop struct {
	step     func() bool
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(tickRate int, step func() bool) *GameLoop {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &GameLoop{
		step:     step,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks until the loop ends. With realtime false the steps run back to
// back without waiting for the ticker.
func (g *GameLoop) Run(realtime bool) {
	defer close(g.done)
	log.Printf("[loop] Game loop started at %d ticks/second (realtime=%v)", g.tickRate, realtime)

	if !realtime {
		for {
			select {
			case <-g.stopChan:
				log.Println("[loop] Game loop stopped")
				return
			default:
			}
			if !g.step() {
				log.Println("[loop] Game loop finished")
				return
			}
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			log.Println("[loop] Game loop stopped")
			return
		case <-ticker.C:
			if !g.step() {
				log.Println("[loop] Game loop finished")
				return
			}
		}
	}
}

// Stop ends Run and waits for it to return. It must be called at most once,
// after Run has started.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}
