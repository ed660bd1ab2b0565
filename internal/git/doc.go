// Package git provides the Git CLI queries nupin needs to pin
// source-controlled file references to concrete commits, without depending
// on other internal packages.
package git
