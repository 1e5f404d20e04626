package service

import "errors"

var (
	// ErrInvalidRequest marks errors caused by the caller's input
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMirrorDisabled is returned by mirror queries when no ClickHouse host is configured
	ErrMirrorDisabled = errors.New("interaction mirror is not configured")

	// ErrQueueDisabled is returned by publish calls when no SQS queue is configured
	ErrQueueDisabled = errors.New("event queue is not configured")
)
