// Package imaging loads images for the edge detection server and selects the
// part of an image a detection runs on.
//
// Decoding goes through github.com/disintegration/imaging with EXIF
// auto-orientation. Decoded images are cached per path by ImageCache.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. A Region's (X1,Y1) corner is
// inclusive and its (X2,Y2) corner exclusive.
//
// CropRegion returns 0-based pixels together with the origin of the crop in
// the source image. Adding that origin to a sub-pixel edge point found in the
// crop gives its position in the source image.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless.
package imaging
