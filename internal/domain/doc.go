// Package domain defines the core business entities of the tracker
// application (users, projects, tasks, notifications) along with their
// validation rules. Entities here are persistence-agnostic; the store
// layer handles how they are saved and retrieved.
package domain
