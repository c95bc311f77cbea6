// Package render turns sweep results into images and documents: per-cutoff
// PNG frames, animated GIFs, a scatter preview, an HTML summary report and
// GeoJSON exports of each complex.
//
// Raster output uses gonum/plot; the HTML report uses go-echarts; GeoJSON
// uses paulmach/orb.
package render
