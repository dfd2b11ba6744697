package soundpack

// Package soundpack implements the .keyclsound package pipeline: listing
// the online library index, fetching descriptor text and audio payloads,
// parsing descriptors in both their structured and hand-written forms, and
// installing packages into the sounds directory.
