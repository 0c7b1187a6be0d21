// Package submissionservice implements the FanForge submission review
// workflow: creators submit derivative artwork to a campaign, brand reviewers
// approve or reject it, and approved work is registered as a derivative IP
// asset with the external Story Protocol registry.
//
// Layering:
// - domain: core entities, the review state machine, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, notifications, authority,
//   registry and background dispatch
// - adapters: postgres, memory, story protocol client, async dispatcher, HTTP
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - The registry call never runs inside the approve/reject request cycle; it
//   is dispatched to the background after the transition commits.
// - Cross-context reads (campaigns, brand assets, users) go through
//   projection models only, never other contexts' adapters.
package submissionservice
