/*------------------------------------------------------------------------------
* context.go : explicit, caller-owned execution context
*
* One value threaded explicitly into every component: the geometry index
* (construct-once/read-many), the configuration, and a seedable *rand.Rand
* for TDC smearing and any closest-point search that needs one. There is
* no process-wide geometry pointer, digit vector or implicit random engine.
*-----------------------------------------------------------------------------*/
package sandtrack

import "math/rand"

/* Context is passed by pointer into every component entry point (digitizer,
 * reconstructor, selection). It owns no mutable state beyond the random
 * engine; the
 * Geometry it references is built once and never mutated after Build. */
type Context struct {
	Geometry *Geometry
	Config   *Config
	Rand     *rand.Rand
}

/* NewContext builds a Context around an already-built Geometry and Config,
 * seeding its random engine explicitly (no package-global generator, per
 * Open Question "TDC smearing seed"). */
func NewContext(geom *Geometry, cfg *Config, seed int64) *Context {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Context{
		Geometry: geom,
		Config:   cfg,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}
