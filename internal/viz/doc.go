// Package viz renders differentiation results for the terminal.
//
//   - [RenderTable]: styled table of mixed partial derivatives
//   - [RenderSummary]: expression, point and timing of a run
//   - [RenderCheck]: finite-difference comparison rows
//   - [Plot]: derivative curves of a sweep as an ASCII graph
//   - [SweepSVG] and [CurveSVG]: the same curves as SVG polylines
//
// Colors come from the current [Theme]. Set NoColor to render plain text.
package viz
