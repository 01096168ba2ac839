// Command steamsync mirrors the Steam storefront catalog into a local SQLite
// database. `steamsync run` executes one reconciliation pass; `steamsync
// status` reports catalog statistics.
package main
