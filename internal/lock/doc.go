// Package lock handles parsing and writing of nupin.lock files.
// A lock file records the exact package versions and source-controlled files
// pinned by resolution, enabling reproducible restores. Parsing and writing
// are pure transforms over in-memory lines; file I/O lives in Load and Save.
package lock
