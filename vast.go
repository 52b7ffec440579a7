// Package vast audits online course content for media caption compliance
// and accessibility defects. It aggregates HTML bodies from a course's
// pages, assignments, discussions, syllabus, modules, and announcements,
// classifies every embedded media reference, resolves caption status per
// reference (via the video platform's caption API, a media-object
// inspection endpoint, or a manual-check fallback), runs a fixed battery
// of accessibility checks against the same markup, and produces a
// consolidated tabular report.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., canvas/,
// youtube/, goquery/, fs/).
package vast
