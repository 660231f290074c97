// Package render implements the per-label visual accumulators.
//
// # Overview
//
// A Renderable ingests pose samples for one label and keeps the drawables it
// owns on a scene.Surface in step with its accumulated state. Four variants
// exist:
//
//	Trail         append-only polyline through every accepted position
//	PointHistory  one marker every Interval samples, never removed
//	PoseGizmo     the latest pose as three body axes plus a body marker
//	ConeHistory   one oriented cone every ConeInterval samples, older ones dimmed
//
// # Ingest Contract
//
// Ingest returns an error wrapping ErrMissingPosition or ErrMissingOrientation
// when a sample lacks a field the variant needs. The state is left exactly as
// it was before the call apart from the decimation counters, which count
// every sample offered to PointHistory and ConeHistory:
//
//	r := render.NewPointHistory(surface, style, 5, 1)
//	for _, s := range samples {
//		if err := r.Ingest(s); err != nil {
//			log.Printf("skip points: %v", err)
//		}
//	}
//
// Callers treat these errors as recoverable skips.
//
// # Trail Updates
//
// Trail shares its point buffer with a single scene.Polyline. Ingest appends
// one vertex and the painter picks up the new segment on its next pass, so a
// long stream costs O(1) per sample instead of rebuilding the curve.
//
// # Factories
//
// FactoryFor maps the configuration names "trail", "points", "gizmo" and
// "cones" to a Factory. Factories create the drawables immediately, so a
// renderable is only built once its label is switched on.
//
// # Concurrency
//
// Renderables are not safe for concurrent use. They are driven from the UI
// event loop only.
package render
