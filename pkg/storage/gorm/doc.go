// Package gorm provides a GORM-backed implementation of storage.Storage.
//
// Items live in the local_storage table created by the db/migrations
// directory. Raw SQL is used throughout so the package works the same with
// a live PostgreSQL connection and with sqlmock in tests.
package gorm
