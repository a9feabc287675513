// Package domain contains the core business types for LexVault.
// These are pure domain objects with no knowledge of storage, transport,
// or AI provider specifics. Every persisted entity carries a tenant scope;
// adapters must never return an entity to a request from another tenant.
package domain
