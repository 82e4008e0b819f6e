// Package store persists districts, schools, enrollment, and import runs.
//
// The schema is embedded as versioned migrations, one directory per driver,
// and applied with golang-migrate when a Store is opened. Queries are written
// once with sqlx named parameters and rebound for the active driver.
package store
