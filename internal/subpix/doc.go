// Package subpix detects image edges at sub-pixel accuracy and links them into
// ordered curves.
//
// The package consumes a gradient field (signed components Gx, Gy and the
// magnitude G) produced by an upstream smoothing/derivative stage and runs four
// sequential stages over it:
//
//  1. Locate: every interior pixel that is a local maximum of G along its
//     dominant gradient axis becomes an edge point. The position is refined
//     along that axis by fitting a parabola through the three magnitudes.
//  2. Link: each edge point is connected to its best forward and backward
//     neighbour within a 5x5 window, producing a graph where every node has at
//     most one successor and one predecessor.
//  3. Hysteresis: chains are kept only where they are reachable from a point
//     with G >= high through points with G >= low.
//  4. Extract: the surviving graph is walked into ordered curves, each point
//     carrying the unit gradient direction at its host pixel.
//
// # Coordinate System
//
// Grids are indexed (x, y) with x the column and y the row, origin at the
// top-left pixel. Sub-pixel positions use the same axes; pixel centres sit on
// integer coordinates.
//
// # Determinism
//
// All stages visit pixels in raster order (row by row, left to right) and are
// single threaded. The linking stage resolves conflicts greedily, so the graph
// it builds depends on that visitation order when three or more points
// compete for the same junction. The order is fixed, so repeated runs on the
// same field give identical curves.
//
// # Thread Safety
//
// Grids and graphs are plain values owned by a single Detect call and are not
// safe for concurrent mutation. Independent Detect calls may run concurrently.
package subpix
