package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/cleave/components"
	cfg "github.com/automoto/cleave/config"
	"github.com/automoto/cleave/input"
	"github.com/automoto/cleave/level"
	"github.com/automoto/cleave/scenes"
	"github.com/yohamta/donburi"
)

const appName = "cleave"

func main() {
	tmxPath := flag.String("tmx", "", "Encounter map file (default: built-in map named by -level)")
	levelName := flag.String("level", "arena", "Built-in encounter map")
	tuningPath := flag.String("tuning", "", "YAML tuning file overriding the defaults")
	watch := flag.Bool("watch", false, "Reload the -tuning file when it changes")
	useProfile := flag.Bool("profile", true, "Load the saved tuning profile when no -tuning file is given")
	saveProfile := flag.Bool("save-profile", false, "Save the tuning in effect as the profile")
	scriptPath := flag.String("script", "", "Tengo script driving the player (default: autopilot)")
	botLevel := flag.String("bot", "normal", "Autopilot difficulty: easy, normal or hard")
	tickRate := flag.Int("tickrate", cfg.Sim.TickRate, "Simulation tick rate (ticks per second)")
	maxTicks := flag.Int("ticks", 3000, "Stop after this many ticks (0 = until the fight ends)")
	realtime := flag.Bool("realtime", false, "Pace ticks at the tick rate instead of running flat out")
	verbose := flag.Bool("v", false, "Log presentation signals")
	flag.Parse()

	if *tickRate <= 0 {
		log.Fatalf("Invalid tick rate %d", *tickRate)
	}
	cfg.Sim.TickRate = *tickRate

	applyStartupTuning(*tuningPath, *useProfile, *saveProfile)

	layout, err := loadLayout(*tmxPath, *levelName)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	enc, err := scenes.Load(layout)
	if err != nil {
		log.Fatalf("Failed to build encounter: %v", err)
	}
	logEvents(enc, *verbose)

	var src input.Source
	if *scriptPath != "" {
		if src, err = input.LoadScript(*scriptPath); err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
	} else {
		difficulty, err := cfg.ParseBotDifficulty(*botLevel)
		if err != nil {
			log.Fatalf("Invalid -bot: %v", err)
		}
		src = input.NewChaseSource(difficulty)
	}

	var updates <-chan []byte
	var watchErrors <-chan error
	if *watch && *tuningPath != "" {
		watcher, err := cfg.WatchTuning(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to watch tuning: %v", err)
		}
		defer watcher.Close()
		updates, watchErrors = watcher.Updates, watcher.Errors
	}

	delta := cfg.Sim.TickDelta()
	ticks := 0
	scriptFailed := false
	step := func() bool {
		select {
		case data, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			reloadTuning(enc, data)
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				break
			}
			log.Printf("[tuning] Watch error: %v", err)
		default:
		}

		snapshot, err := src.Next(input.Observe(enc.World()))
		if err != nil {
			if !scriptFailed {
				log.Printf("[script] %v (holding no input)", err)
				scriptFailed = true
			}
			snapshot = components.InputSnapshot{}
		}

		enc.Tick(delta, snapshot)
		ticks++
		if enc.Outcome() != scenes.OutcomePending {
			return false
		}
		return *maxTicks <= 0 || ticks < *maxTicks
	}

	loop := scenes.NewGameLoop(*tickRate, step)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		loop.Stop()
	}()

	log.Printf("Starting encounter %q (tick rate: %d/s, enemies: %d)", layout.Name, *tickRate, len(enc.Enemies()))
	loop.Run(*realtime)

	log.Printf("[encounter] %s after %d ticks (%s simulated)", enc.Outcome(), ticks, enc.Now())
}

func applyStartupTuning(tuningPath string, useProfile, saveProfile bool) {
	var profile *cfg.Profile
	if useProfile || saveProfile {
		p, err := cfg.OpenProfile(appName)
		if err != nil {
			log.Printf("Warning: Could not open tuning profile: %v", err)
		}
		profile = p
	}

	switch {
	case tuningPath != "":
		t, err := cfg.LoadTuningFile(tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		if err := cfg.Apply(t); err != nil {
			log.Fatalf("Invalid tuning %s: %v", tuningPath, err)
		}
		log.Printf("[tuning] Applied %s", tuningPath)
	case useProfile && profile != nil:
		t, err := profile.Load()
		if err != nil {
			log.Printf("Warning: Could not load tuning profile: %v", err)
			break
		}
		if t != nil {
			if err := cfg.Apply(*t); err != nil {
				log.Printf("Warning: Ignoring tuning profile: %v", err)
				break
			}
			log.Println("[tuning] Applied saved profile")
		}
	}

	if saveProfile && profile != nil {
		if err := profile.Save(cfg.Snapshot()); err != nil {
			log.Printf("Warning: Could not save tuning profile: %v", err)
			return
		}
		log.Println("[tuning] Saved profile")
	}
}

func loadLayout(tmxPath, levelName string) (*level.Layout, error) {
	if tmxPath != "" {
		return level.Load(os.DirFS(filepath.Dir(tmxPath)), filepath.Base(tmxPath))
	}
	layouts, names, err := level.LoadAll(level.Maps, "maps")
	if err != nil {
		return nil, err
	}
	layout, ok := layouts[levelName]
	if !ok {
		return nil, fmt.Errorf("unknown level %q (available: %v): %w", levelName, names, fs.ErrNotExist)
	}
	return layout, nil
}

func reloadTuning(enc *scenes.Encounter, data []byte) {
	t, err := cfg.ParseTuning(data)
	if err != nil {
		log.Printf("[tuning] Reload failed: %v", err)
		return
	}
	if err := enc.ApplyTuning(t); err != nil {
		log.Printf("[tuning] Reload rejected: %v", err)
		return
	}
	log.Println("[tuning] Reloaded")
}

func logEvents(enc *scenes.Encounter, verbose bool) {
	w := enc.World()
	components.DamageEvents.Subscribe(w, func(_ donburi.World, e components.DamageEvent) {
		log.Printf("[encounter] %s %v hit for %d: %s", e.Kind, e.Entity, e.Amount, e.Label)
	})
	components.DeathEvents.Subscribe(w, func(_ donburi.World, e components.DeathEvent) {
		log.Printf("[encounter] %s %v died", e.Kind, e.Entity)
	})
	enc.OnEntityExpired(func(e components.ExpiredEvent) {
		log.Printf("[encounter] %s %v removed", e.Kind, e.Entity)
	})
	if verbose {
		components.SignalEvents.Subscribe(w, func(_ donburi.World, e components.SignalEvent) {
			if e.Trigger {
				log.Printf("[signal] %v %s", e.Entity, e.Name)
				return
			}
			log.Printf("[signal] %v %s=%v", e.Entity, e.Name, e.Value)
		})
	}
}
