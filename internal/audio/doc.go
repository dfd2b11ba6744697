package audio

// Package audio implements the sound library: loading decoded samples from
// the sounds directory, low-latency playback on a single dedicated channel,
// and change detection over the directory. Decoding and rendering are
// delegated to a Backend so the library logic stays testable without a
// sound device.
