// Package pipeline runs one catalog build: scan the assets directory, write
// content.json atomically and report a summary.
package pipeline
