// Package ocr connects page segmentation to Tesseract (via gosseract/v2).
//
// It plays two roles:
//
//   - TesseractEngine implements layout.Engine. Manual segmentation hands it
//     one region of a page at a time and gets back text line and paragraph
//     boxes from Tesseract's own layout analysis.
//   - RecognizeLines is the downstream recognizer. It reads the text of
//     each line rectangle produced by segmentation, in order.
//
// # Prerequisites
//
// Tesseract and its development headers must be installed:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Options.TessdataPrefix points Tesseract at a non-standard traineddata
// directory.
//
// # Coordinates
//
// Rectangles going in and out of this package are raster coordinates:
// top-left origin, Y downward, exclusive upper bounds.
package ocr
