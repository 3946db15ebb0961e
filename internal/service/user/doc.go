// Package user implements self-service profile updates. An authenticated
// user may change their own username and email; no cross-user access exists.
package user
