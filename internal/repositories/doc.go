// Package repositories implements SQLite persistence for the front-end's local storage.
//
// [LocalStorage] satisfies session.Store: string values under string keys, durable across runs until removed.
// It plays the part the browser's localStorage plays for a single-page app; one database file holds the state of
// one user on one machine.
//
// The schema is created by the migrations embedded in the shared package.
package repositories
