// Package viz renders the motor scene in a terminal.
//
//   - [Canvas]: Braille dot canvas, two by four dots per cell, with a
//     color per cell
//   - [Canvas.DrawScene]: rasterizes a flattened scene, recoloring the
//     rotor from the active [Theme]
//   - [Gauge] and [Spinner]: small panel widgets
//
// Themes are looked up by name; [NextTheme] cycles them in a fixed order.
package viz
