// Package domain contains the core business entities of TaskMate: users
// identified by email and the tasks they own. It holds the field constraints
// shared by task creation and task updates, independent of storage or HTTP.
package domain
