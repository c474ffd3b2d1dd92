// Package model defines the records scrapers produce and the status
// lifecycle they move through while being processed.
package model
