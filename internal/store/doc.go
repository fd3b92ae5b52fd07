// Package store defines interfaces for task and user persistence.
// These interfaces keep the service layer independent of the database: every
// task mutation is expressed as one filtered, atomic operation scoped by task
// id and owner identity.
package store
