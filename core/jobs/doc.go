// Package jobs manages compute jobs submitted by fleet operators.
//
// Jobs are plain records keyed by an integer id. Pricing, duration and the
// progress projection are derived from the priority and the requested size;
// storage is delegated to a Store so that memory, SQLite and PostgreSQL
// backends can be swapped through configuration.
package jobs
