// Package scraper runs the configured scrapers inside the Fx lifecycle.
//
// Scrapers are built from the validated configuration by FromConfig. NewModule
// wires them into a Runner that performs one pass in the background when the
// application starts and cancels it when the application stops.
package scraper
