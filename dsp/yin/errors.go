package yin

import "errors"

// Errors returned by the engine.
var (
	// ErrInvalidConfiguration reports a non-positive sample rate or frame
	// length, or a threshold outside (0, 1).
	ErrInvalidConfiguration = errors.New("yin: invalid configuration")
	// ErrFrameLengthMismatch reports a frame whose length differs from the
	// configured frame length. The engine state is left untouched.
	ErrFrameLengthMismatch = errors.New("yin: frame length mismatch")
	// ErrClosed reports use of an engine after Close.
	ErrClosed = errors.New("yin: engine closed")
)
