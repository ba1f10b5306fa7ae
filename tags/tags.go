package tags

import "github.com/yohamta/donburi"

var (
	Player    = donburi.NewTag().SetName("Player")
	Enemy     = donburi.NewTag().SetName("Enemy")
	Wall      = donburi.NewTag().SetName("Wall")
	Encounter = donburi.NewTag().SetName("Encounter")
)

// Resolv tags for physics collision and melee filters
const (
	ResolvSolid  = "solid"
	ResolvPlayer = "Player"
	ResolvEnemy  = "Enemy"
)
