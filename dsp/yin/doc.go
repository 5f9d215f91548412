// Package yin estimates the fundamental frequency of a monophonic audio frame
// with the YIN algorithm (de Cheveigné & Kawahara, 2002), using an FFT-based
// autocorrelation for the difference function.
//
// An [Engine] is built once per (sample rate, frame length) pair. Each call to
// [Engine.Estimate] runs a fixed pipeline over one frame:
//
//  1. Spectral autocorrelation: the frame is zero-padded to the next power of
//     two, transformed, reduced to its power spectrum and transformed back
//     (Wiener-Khinchin). The result is circular over the padded length.
//  2. Difference function: d(tau) from prefix sums of squares and the
//     autocorrelation.
//  3. Cumulative mean normalization: d'(tau) = d(tau)*tau / sum d(1..tau).
//  4. Candidate search: the first lag >= 2 with d'(tau) below the threshold,
//     walked forward to the bottom of its dip.
//  5. Parabolic refinement of the lag and conversion to Hz.
//
// # Frame length and wrap-around
//
// A frame of length N is padded to P, the next power of two. Lags above P-N
// pick up wrap-around terms, so a power-of-two frame (P == N) mixes the end of
// the frame into every lag and biases the estimate slightly. Frames with
// N <= 2P/3, such as 1280 or 1365 samples padding to 2048, keep every searched
// lag free of wrap-around.
//
// The outcome is a [Result]: either a frequency or [NotFound] for silent,
// noisy or unvoiced frames. NotFound is a normal outcome, not an error.
//
// # Usage
//
//	e, err := yin.New(44100, 2048)
//	if err != nil { ... }
//	defer e.Close()
//
//	res, err := e.Estimate(frame)
//	if hz, ok := res.Frequency(); ok { ... }
//
// # Memory and concurrency
//
// All scratch buffers are allocated in [New] and reused, so Estimate does not
// allocate with the default FFT backend. An Engine is not safe for concurrent
// use: calls on one engine must be sequential. Use one engine per audio stream;
// distinct engines share nothing and may run in parallel.
package yin
