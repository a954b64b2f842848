// Package particles implements a toy 2D charged-particle system.
//
// The package owns the physics and nothing else:
//
//   - [Particle]: a point charge with position, velocity and mass
//   - [System]: an ordered particle collection with the per-frame force
//     pass ([System.UpdateVel]) and position step ([System.UpdatePos])
//   - [System.SampleField] and [System.SamplePotential]: grid sampling for
//     front ends that draw the field
//
// Forces follow an arbitrary inverse-cube law scaled by the system
// coefficient K; units are not physical.
//
// # Example
//
//	sys := particles.NewSystem()
//	_ = sys.Spawn(particles.Particle{X: 100, Y: 100, Mass: 100, Charge: 10})
//	_ = sys.Spawn(particles.Particle{X: 200, Y: 100, Mass: 100, Charge: -10})
//	sys.UpdateVel()
//	sys.UpdatePos(particles.Bounds{XMax: 800, YMax: 600})
//
// # Thread Safety
//
// System is NOT thread-safe. Spawn/remove calls and update calls must not
// interleave within a frame.
package particles
