package engine

import "testing"

func TestParseEffectStructured(t *testing.T) {
	e := ParseEffect(`{"damage":25,"description":"sharp"}`)
	if e.WeaponDamage() != 25 {
		t.Fatalf("damage=%d, want 25", e.WeaponDamage())
	}
	if e.Description != "sharp" {
		t.Fatalf("description=%q", e.Description)
	}

	a := ParseEffect(`{"protection":12}`)
	if a.ArmourProtection() != 12 {
		t.Fatalf("protection=%d, want 12", a.ArmourProtection())
	}
}

func TestParseEffectLegacyString(t *testing.T) {
	e := ParseEffect("Deals 25 damage to the enemy")
	if e.WeaponDamage() != 25 {
		t.Fatalf("legacy damage=%d, want 25", e.WeaponDamage())
	}

	a := ParseEffect("Absorbs 8 points of damage")
	if a.ArmourProtection() != 8 {
		t.Fatalf("legacy protection=%d, want 8", a.ArmourProtection())
	}
}

func TestParseEffectFallbacks(t *testing.T) {
	e := ParseEffect("a fearsome blade")
	if e.WeaponDamage() != FallbackWeaponDamage {
		t.Fatalf("weapon fallback=%d, want %d", e.WeaponDamage(), FallbackWeaponDamage)
	}
	if e.ArmourProtection() != FallbackProtection {
		t.Fatalf("armour fallback=%d, want %d", e.ArmourProtection(), FallbackProtection)
	}
	if e.ImmunityHours() != FallbackImmunityHours {
		t.Fatalf("potion fallback=%d, want %d", e.ImmunityHours(), FallbackImmunityHours)
	}

	// Malformed JSON degrades to the legacy path, then to fallbacks.
	m := ParseEffect(`{"damage": oops}`)
	if m.WeaponDamage() != FallbackWeaponDamage {
		t.Fatalf("malformed damage=%d, want %d", m.WeaponDamage(), FallbackWeaponDamage)
	}

	empty := ParseEffect("")
	if empty.WeaponDamage() != FallbackWeaponDamage || empty.ArmourProtection() != FallbackProtection {
		t.Fatalf("empty payload should use fallbacks")
	}

	neg := ParseEffect(`{"damage":-5,"protection":-3}`)
	if neg.WeaponDamage() != 0 || neg.ArmourProtection() != 0 {
		t.Fatalf("negative values should clamp to 0")
	}
}
