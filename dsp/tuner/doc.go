// Package tuner turns a stream of mono samples into instrument-tuner readings
// on top of a [yin.Engine].
//
// A [Tracker] keeps a rolling frame of the engine's frame length, advances it
// by a hop (half a frame by default), skips frames whose peak level is below a
// gate, and converts each detected pitch into a [State]: frequency, nearest
// equal-tempered note (A4 = 440 Hz) and offset in cents. A [Smoother] averages
// the last few states to steady the display.
package tuner
