// Package gradient turns a decoded image into the gradient field consumed by
// the sub-pixel edge engine.
//
// # Pipeline
//
// Compute runs three stages:
//
//  1. Intensity: the image is reduced to one 8-bit channel. "luma" uses
//     imaging.Grayscale (BT.601 weights), "bild" uses bild's effect.Grayscale
//     and "lightness" uses the CIE L* channel from go-colorful scaled to 0..255.
//
//  2. Smoothing: a Gaussian of standard deviation Sigma, from imaging.Blur
//     ("imaging") or bild's blur.Gaussian ("bild"). Sigma 0 or smoother
//     "none" skips this stage.
//
//  3. Gradient: a 3x3 Sobel operator with replicated borders. Both components
//     are scaled by 1/4, so a step of height s between two columns gives
//     Gx = s on the pixels either side of it.
//
// # Coordinate System
//
// The source image may have any Bounds().Min; the returned grids are always
// 0-based, with (0,0) at the image's top-left pixel.
package gradient
