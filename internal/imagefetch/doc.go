// Package imagefetch resolves image references to decoded images. It reads
// http(s) URLs and local files, decodes raster formats and rasterises SVG,
// caches successful results, and coalesces concurrent fetches of the same
// reference.
package imagefetch
