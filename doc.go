// Package stage provides the render-state core for declarative scene-graph
// rendering in the GoGPU ecosystem.
//
// # Overview
//
// stage is the state container that sits between a declarative reconciler and
// a render loop. A Store is created once per mounted root and owns everything
// the renderer-facing side of the system mutates: the active camera, the scene
// root, the raycaster, the frame clock, the canvas size, the derived viewport
// geometry, the adaptive-quality (performance) scalar, and the priority-ordered
// list of frame subscribers.
//
// All mutations publish synchronously: a read issued immediately after SetSize
// observes both the new size and the matching recomputed viewport. Dependents
// react to specific slices of state through Observe, which fires a callback
// only when the selected value changes under a caller-supplied equality.
//
// # Quick Start
//
//	import "github.com/gogpu/stage"
//
//	// Mount a root: one store per mounted scene.
//	st := stage.New(stage.WithSize(800, 600))
//	defer st.Close()
//
//	// Subscribe to the frame loop. Priority orders execution; the
//	// returned handle unsubscribes and is safe to call twice.
//	stop := st.Subscribe(func(s stage.State, dt time.Duration) {
//	    // runs once per tick
//	}, 0)
//	defer stop()
//
//	// Drive frames.
//	loop := stage.NewLoop()
//	defer loop.Attach(st)()
//	loop.Run(ctx)
//
// # Architecture
//
// The library is organized into:
//   - Root package: Store, State, Observe, frame subscribers, performance
//     governor, viewport math, render loop
//   - camera/: perspective and orthographic cameras the store mutates
//   - raycast/: pointer picking configured from the active camera
//   - scene/: the persistent node hierarchy a reconciler mutates
//   - render/: renderer boundary, adaptive CPU target, host GPU device handoff
//   - backend/wgpu/: drawable sizing and device lifecycle on gogpu/wgpu
//
// # Concurrency
//
// The intended model is cooperative: mutations and subscriber notifications
// run on the goroutine driving the render loop. The store is nevertheless
// safe for concurrent use, because the performance governor's recovery task
// fires from a runtime timer goroutine: all state lives behind the store
// lock, and observer deliveries are serialized so callbacks committed from
// different goroutines never overlap. No operation blocks.
package stage

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
