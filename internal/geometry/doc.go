// Package geometry provides the integer rectangle used throughout page
// segmentation and the transforms between coordinate frames.
//
// # Coordinate Frames
//
// Two frames are in use:
//   - Raster frame: origin at the top-left, Y increases downward. All input
//     regions and all output rectangles use this frame.
//   - Analysis frame: origin at the bottom-left, Y increases upward. The
//     segmentation stages work in this frame so that "the top of the page"
//     is the largest Y.
//
// Flip converts between the two and is applied exactly once on the way in
// and once on the way out.
package geometry
