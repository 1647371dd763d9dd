// Package world supplies the external collaborators the engine consumes:
// the highway scenario (beam sites, neighbor relationships, lanes), the
// vehicle traffic model (spawn, move, respawn), and disc-propagation
// reachability with directional beams. It implements sim.Environment.
//
// The core never sees any of the geometry here; it crosses the boundary
// only through Discover/Probe answers and the client roster.
package world
