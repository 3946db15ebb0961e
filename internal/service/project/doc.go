// Package project implements project CRUD for authenticated users.
//
// Every row is scoped to its owner; a project belonging to someone else is
// indistinguishable from a missing one. Validation is exhaustive: all
// violated fields are reported together rather than failing on the first.
package project
