// Package layout finds the text structure of a binarized page: header
// lines, columns and text lines.
//
// # Automatic Segmentation
//
// Segment runs a fixed pipeline over a two-level page:
//
//  1. ExtractComponents labels 8-connected ink regions and returns their boxes.
//  2. AverageHeight takes a 5% trimmed mean of the box heights, and
//     StripNonChars paints rules, images and other odd blobs out of the
//     working bitmap.
//  3. FindHeaderLine peels Params.HeaderLines title lines off the top.
//  4. FindColumns splits the remaining body into at most
//     Params.TargetColumns bands using a median high-pass over the
//     column-sum profile.
//  5. Each column's row-sum profile is high-passed against its maximum to
//     find line bands, and every band is rebuilt as the union of the
//     character boxes that overlap it vertically.
//
// The stages work in the bottom-left analysis frame described in the
// geometry package. Each stage receives the top of the unsegmented area as
// an argument; nothing is carried between calls.
//
// # Manual Segmentation
//
// ManualSegmenter takes regions from a string such as
// "10,10,300,800~310,10,600,800", cuts each region out of the page and hands
// it to an Engine. Engine output is translated back into page coordinates
// and merged.
//
// All rectangles returned by this package are in raster coordinates.
package layout
