package domain

import "errors"

// ErrFlowNotFound is returned when no stored flow matches a dialed number.
var ErrFlowNotFound = errors.New("flow not found")

// ErrAmbiguousNumber is returned when more than one stored flow matches a
// dialed number. Resolution matches on canonical equality, so this only
// happens when two flows were saved with numbers that normalize to the
// same canonical form. It is an explicit outcome, never a silent pick.
var ErrAmbiguousNumber = errors.New("ambiguous number: multiple flows match")
