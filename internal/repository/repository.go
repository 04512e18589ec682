// Package repository defines the data access interfaces. Implementations
// live in subpackages (postgres) and hand-written mocks in mocks.
package repository
