// Package testutil provides testing utilities for bumpbuf.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Input
//
//	rng := testutil.NewRNG(seed)
//	p := rng.Bytes(64)
//
// # Reference Model
//
// Model is a plain growable []byte with the same operations as
// bumpbuf.Buffer. Property tests apply one random operation sequence to both
// and compare the results:
//
//	var m testutil.Model
//	m.Append(p)
//	m.AppendWithin(0, 3)
//	m.Pop()
package testutil
