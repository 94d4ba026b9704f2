package model

// Package model defines domain data structures shared by the track source, the
// download orchestrator and the presentation surfaces: jobs, per-track items,
// progress snapshots, fetch events, state enums and the error taxonomy.
