// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (keys, pre-keys, messages) and contracts (store and
// trace interfaces) only.
package domain
