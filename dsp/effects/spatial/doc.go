// Package spatial provides stereo image processing.
//
// Included:
//   - Width: pure mid/side width function for one sample pair.
//   - StereoWidener: block processor around Width with per-buffer width
//     ramps.
package spatial
