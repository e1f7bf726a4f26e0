// Package pfi contains the fixed focal-plane contract: fiber indexing and
// center geometry, dot-blocking geometry, and the sky-to-millimeter
// projection. These are compile-time constants of the kernel, not
// configuration — see §9 "Globals" of the specification.
package pfi

const (
	// NFiber is the total number of robotic fiber positioners: 3 fields
	// of 14 modules of 57 cobras each.
	NFiber = 3 * 57 * 14

	// RMax is the patrol radius of a single fiber, in millimeters.
	RMax = 4.75

	// RKernel is the radius of the density kernel used by the New
	// strategy, in millimeters. Numerically equal to RMax, but kept as
	// a distinct named constant because the two quantities mean
	// different things.
	RKernel = 4.75

	// DotDist is the minimum distance, in millimeters, a target must
	// keep from a fiber's dot center to be reachable by that fiber.
	DotDist = 1.375

	// CollDist is the minimum center-to-center distance, in
	// millimeters, between two targets committed in the same exposure.
	CollDist = 2.0

	// RPlate is the focal-plane radius, in millimeters, beyond which
	// targets are discarded before multi-exposure iteration even
	// begins.
	RPlate = 190.0
)
