// Package level maps level numbers to difficulty and lists the unlockable skins.
package level

import "github.com/zucenko/mazerun/model"

// Resolve is a step function over level bands 1-5, 6-10, 11-20 and 21+.
// Levels below 1 resolve as level 1.
func Resolve(level int) model.LevelConfig {
	if level < 1 {
		level = 1
	}
	cfg := model.LevelConfig{Level: level}
	switch {
	case level <= 5:
		cfg.GridSize = 15
		cfg.EnemyCount = 1
		cfg.EnemyBehavior = model.Patrol
		cfg.EnemySpeed = 700
	case level <= 10:
		cfg.GridSize = 19
		cfg.EnemyCount = 2 + (level-6)/2
		cfg.EnemyBehavior = model.Random
		cfg.EnemySpeed = 500
	case level <= 20:
		cfg.GridSize = 21
		cfg.EnemyCount = 4 + (level-11)/3
		cfg.EnemyBehavior = model.Chase
		cfg.EnemySpeed = 400
	default:
		cfg.GridSize = 25
		cfg.EnemyCount = 6 + (level-20)/2
		cfg.EnemyBehavior = model.Chase
		cfg.EnemySpeed = 300
	}
	return cfg
}

var Skins = []model.Skin{
	{Id: "red", Name: "Classic Red", Color: "#ef4444", UnlockLevel: 0},
	{Id: "blue", Name: "Cool Blue", Color: "#3b82f6", UnlockLevel: 0},
	{Id: "yellow", Name: "Speedy Yellow", Color: "#eab308", UnlockLevel: 0},
	{Id: "black", Name: "Ninja Black", Color: "#171717", UnlockLevel: 10},
	{Id: "green", Name: "Neon Green", Color: "#22c55e", UnlockLevel: 20},
	{Id: "camo", Name: "Camo", Color: "#57534e", UnlockLevel: 30},
}

// DefaultSkin is selected on a fresh or reset profile.
func DefaultSkin() model.Skin {
	return Skins[0]
}

func FindSkin(id string) (model.Skin, bool) {
	for _, s := range Skins {
		if s.Id == id {
			return s, true
		}
	}
	return model.Skin{}, false
}

// SkinUnlocked reports whether skin is available with unlocked levels opened.
// A skin gated at level N opens once the player has unlocked past N.
func SkinUnlocked(skin model.Skin, unlocked int) bool {
	return skin.UnlockLevel <= 0 || unlocked > skin.UnlockLevel
}
