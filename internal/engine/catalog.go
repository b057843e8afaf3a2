package engine

import "context"

type catalogItem struct {
	name     string
	itemType ItemType
	cost     int
	effect   string
}

// defaultCatalog is the seed shop. Item definitions live outside the engine;
// this is just the starter set so a fresh database is playable.
var defaultCatalog = []catalogItem{
	{"Wooden Sword", ItemTypeWeapon, 50, `{"damage":10,"description":"A splintery starter blade."}`},
	{"Steel Sword", ItemTypeWeapon, 150, `{"damage":20,"description":"Reliable sharpened steel."}`},
	{"War Axe", ItemTypeWeapon, 300, `{"damage":30,"description":"Heavy, loud, persuasive."}`},
	{"Leather Vest", ItemTypeArmour, 40, `{"protection":5,"description":"Better than a shirt."}`},
	{"Chain Mail", ItemTypeArmour, 120, `{"protection":10,"description":"Rings of tempered iron."}`},
	{"Plate Armour", ItemTypeArmour, 250, `{"protection":15,"description":"Full coverage, slow walk."}`},
	{"Immunity Potion", ItemTypePotion, 100, `{"hours":24,"description":"No attack lands for a day."}`},
	{"Greater Immunity Potion", ItemTypePotion, 180, `{"hours":48,"description":"Two days of peace."}`},
	{"Name Change Scroll", ItemTypeNameChange, 200, `{"description":"Become someone else."}`},
	{"Name Restore Scroll", ItemTypeNameRestore, 60, `{"description":"Become yourself again."}`},
}

// SeedCatalog upserts the default items. Safe to call on every startup.
func (s *Service) SeedCatalog(ctx context.Context) error {
	for _, it := range defaultCatalog {
		if err := s.items.Upsert(ctx, it.name, string(it.itemType), it.cost, it.effect); err != nil {
			return err
		}
	}
	return nil
}
