// Package workspace integrates manifest and lock handling with path
// resolution. It provides the Context type holding resolved project paths
// and loaded configuration, and the Create/Update operations that drive a
// resolution and persist it to the lock file.
package workspace
