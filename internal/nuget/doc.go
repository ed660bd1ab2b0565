// Package nuget discovers package versions and dependency metadata from
// NuGet v3 flat-container feeds and from local directories of .nupkg files.
// It implements the resolver's Index contract.
package nuget
