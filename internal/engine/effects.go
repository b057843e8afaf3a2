package engine

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const (
	// FallbackWeaponDamage applies when a weapon payload carries no usable
	// damage value.
	FallbackWeaponDamage = 10

	// FallbackProtection applies when an armour payload carries no usable
	// protection value. Malformed armour protects nothing.
	FallbackProtection = 0

	// FallbackImmunityHours is the base potion tier.
	FallbackImmunityHours = 24
)

// Effect is the normalized form of an item's effect payload. Modern payloads
// are JSON objects; legacy payloads are descriptive strings kept in
// Description and mined for a number on demand.
type Effect struct {
	Damage      *int   `json:"damage,omitempty"`
	Protection  *int   `json:"protection,omitempty"`
	Hours       *int   `json:"hours,omitempty"`
	Description string `json:"description,omitempty"`
}

var effectNumber = regexp.MustCompile(`\d+`)

// ParseEffect normalizes a raw payload once, at the boundary. Anything that
// does not decode as JSON is treated as a legacy descriptive string.
func ParseEffect(raw string) Effect {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Effect{}
	}
	if strings.HasPrefix(raw, "{") {
		var e Effect
		if err := json.Unmarshal([]byte(raw), &e); err == nil {
			return e
		}
	}
	return Effect{Description: raw}
}

// WeaponDamage resolves the damage an effect deals, >= 0.
func (e Effect) WeaponDamage() int {
	if e.Damage != nil {
		return clampNonNegative(*e.Damage)
	}
	if n, ok := legacyNumber(e.Description); ok {
		return n
	}
	return FallbackWeaponDamage
}

// ArmourProtection resolves the protection an effect grants, >= 0.
func (e Effect) ArmourProtection() int {
	if e.Protection != nil {
		return clampNonNegative(*e.Protection)
	}
	if n, ok := legacyNumber(e.Description); ok {
		return n
	}
	return FallbackProtection
}

// ImmunityHours resolves the immunity duration of a potion.
func (e Effect) ImmunityHours() int {
	if e.Hours != nil && *e.Hours > 0 {
		return *e.Hours
	}
	return FallbackImmunityHours
}

func legacyNumber(s string) (int, bool) {
	m := effectNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
