// Package discovery keeps the list, map and detail views of the company discovery page consistent.
//
// Filtering and pagination are pure functions over an immutable company snapshot. Selection has a
// single owner, SelectionStore, and is only ever written by the map engine's click callback: a click
// in the list is forwarded to the engine as a marker event (MarkerSyncBridge), so list and map clicks
// share one execution path. Ratings, distances and opening status are placeholder values produced
// per render by a PlaceholderMetrics implementation.
package discovery
