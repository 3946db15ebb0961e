// Package auth implements credential verification and account creation.
//
// SignIn accepts either an email address or a username as the principal and
// compares the password against the stored bcrypt hash. SignUp is gated by a
// feature flag so that account creation can be closed without a deploy; when
// open it creates the user and their default contexts in one pass.
package auth
