// Package resolve turns manifest requirements into a resolution: a mapping
// from package name to either a pinned package or a conflict between two
// requesters. Package discovery is abstracted behind the Index interface so
// the resolver stays independent of feed transports, and conflicts are data
// rather than errors; rendering them for the user is the conflict report's
// job, and failing on them is the caller's.
package resolve
