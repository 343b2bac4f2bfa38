// Package services holds the client-side state of the tracker: the session,
// the mirrored entity collections and the running timer. Every service guards
// its own state with a mutex that is never held across an API call, so the
// last response to arrive wins.
package services
