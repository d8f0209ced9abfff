package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, clients and services return
// these (optionally wrapped) so the transport layer can translate them.
//
//   - ErrNotFound: entity does not exist in store
//   - ErrUnavailable: a collaborator is temporarily unavailable
//   - ErrNetwork: transport-level failure talking to the plant API
//   - ErrRefreshTimeout: a refresh did not finish within its configured bound
//   - ErrInvalidInput: caller supplied a value the operation cannot accept
var (
	ErrNotFound       = errors.New("not found")
	ErrUnavailable    = errors.New("unavailable")
	ErrNetwork        = errors.New("network failure")
	ErrRefreshTimeout = errors.New("refresh timed out")
	ErrInvalidInput   = errors.New("invalid input")
)
