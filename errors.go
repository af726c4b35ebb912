package easyecies

import "fmt"

var ErrDomainNotFound = fmt.Errorf("curve domain not found")
var ErrMalformedEnvelope = fmt.Errorf("malformed envelope")
var ErrAuthenticationFailure = fmt.Errorf("message authentication failed")
var ErrDifferentCurves = fmt.Errorf("the keys must use the same curve")
var ErrUnsupportedCurve = fmt.Errorf("the operation is not supported on this curve")
var ErrInvalidPublicKey = fmt.Errorf("invalid public key")
var ErrInvalidPrivateKey = fmt.Errorf("invalid private key")

// ErrRandomExhausted is returned by a deterministic reader that has no
// bytes left.
var ErrRandomExhausted = fmt.Errorf("deterministic random source exhausted")
