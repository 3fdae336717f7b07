// Package store defines interfaces for data persistence operations and the
// transaction helper shared by their implementations. Business rules depend
// on these interfaces, never on a concrete database.
package store
