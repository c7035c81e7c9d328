// Package assets maps title ids to the image assets uploaded for the presence
// application.
package assets

import (
	"strings"

	"presencesync/internal/constants"
)

// gameAssetKeys lists titles with a dedicated large image.
var gameAssetKeys = []string{
	"0100000000010000", // Super Mario Odyssey
	"01007ef00011e000", // The Legend of Zelda: Breath of the Wild
	"0100f2c0115b6000", // The Legend of Zelda: Tears of the Kingdom
	"0100152000022000", // Mario Kart 8 Deluxe
	"01006a800016e000", // Super Smash Bros. Ultimate
	"0100a3d008c5c000", // Pokémon Scarlet
	"01008f6008c5e000", // Pokémon Violet
	"01006f8002326000", // Animal Crossing: New Horizons
	"0100e95004038000", // Xenoblade Chronicles 2
	"010028600ebda000", // Super Mario 3D World + Bowser's Fury
}

// Catalog answers asset lookups case-insensitively.
type Catalog struct {
	keys map[string]struct{}
}

// NewCatalog returns the built-in keys plus extra.
func NewCatalog(extra ...string) *Catalog {
	c := &Catalog{keys: make(map[string]struct{}, len(gameAssetKeys)+len(extra))}
	for _, k := range gameAssetKeys {
		c.keys[k] = struct{}{}
	}
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.keys[k] = struct{}{}
		}
	}
	return c
}

// Has reports whether titleID has a dedicated image asset.
func (c *Catalog) Has(titleID string) bool {
	_, ok := c.keys[strings.ToLower(titleID)]
	return ok
}

// GameAsset returns the asset key for titleID, falling back to the generic
// game image.
func (c *Catalog) GameAsset(titleID string) string {
	if c.Has(titleID) {
		return strings.ToLower(titleID)
	}
	return constants.DefaultGameAssetKey
}

func (c *Catalog) Len() int {
	return len(c.keys)
}
