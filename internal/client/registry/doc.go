// Package registry holds the persistent records of AcadMate: accounts,
// profiles, notes, the PDF library and the active session.
//
// Every registry is a thin read-modify-write layer over a kvstore.Store. Each
// operation re-reads its key, applies the change and writes the whole JSON
// document back, so the store is the only source of truth. Registries never
// log; they return sentinel errors from internal/common wrapped with context.
package registry
