package game

import (
	"path/filepath"

	"github.com/gwarsgo/gwars/internal/asset"
	"github.com/gwarsgo/gwars/internal/data"
	"github.com/gwarsgo/gwars/internal/render"
	"go.uber.org/zap"
)

// Models holds the polygon models the game draws.
type Models struct {
	Ship       render.Polygon
	Projectile render.Polygon
	Ufo        render.Polygon
	Particle   render.Polygon
}

// LoadModels reads every model named in gd from dir. Missing models load as
// empty polygons (see asset.LoadPolygon), so the game still runs.
func LoadModels(dir string, gd *data.GameData, log *zap.Logger) Models {
	load := func(name string) render.Polygon {
		return asset.LoadPolygon(filepath.Join(dir, name), log)
	}
	return Models{
		Ship:       load(gd.Ship.Model),
		Projectile: load(gd.Projectile.Model),
		Ufo:        load(gd.Ufo.Model),
		Particle:   load(gd.ParticleModel),
	}
}

// Count returns how many models loaded with at least one vertex.
func (m Models) Count() int {
	n := 0
	for _, p := range []render.Polygon{m.Ship, m.Projectile, m.Ufo, m.Particle} {
		if !p.Empty() {
			n++
		}
	}
	return n
}
