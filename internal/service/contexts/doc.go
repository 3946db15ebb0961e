// Package contexts manages the grouping buckets tasks live in.
//
// Each user owns a set of contexts; exactly one of them carries the INBOX
// role and is created at signup. The inbox is the default destination for
// quick-created tasks and the landing page after login.
package contexts
