// Package imaging provides the raster side of page segmentation: loading
// page scans, turning them into two-level bitmaps, cropping, and drawing
// segmentation results back over a page for inspection.
//
// # Coordinate System
//
// All pixel coordinates in this package are raster coordinates:
//   - (0,0) is the top-left pixel, X increases rightward, Y increases downward
//   - For regions, (x0,y0) is inclusive and (x1,y1) is exclusive
//
// The bottom-left analysis frame used by the layout package never appears
// here; callers flip rectangles before handing them over.
//
// # Bitmaps
//
// A Bitmap is the working raster of the segmentation pipeline. FromImage
// accepts images that are already two-level and rejects anything else with
// ErrNotBinary. Binarize thresholds arbitrary input (colour or gray) with
// bild's segment.Threshold after a grayscale conversion.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. A Bitmap is not; each segmentation
// call works on its own copy.
package imaging
