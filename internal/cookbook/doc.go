// Package cookbook defines the recipe-source contract: the wire protocol
// client for external cookbook executables and the aggregator that merges
// every cookbook's recipes into one priority-ordered listing.
package cookbook
