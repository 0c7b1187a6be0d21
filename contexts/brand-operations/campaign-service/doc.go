// Package campaignservice manages brand campaigns: the calls for derivative
// artwork a brand runs on top of one of its IP kits. Campaigns move through
// draft -> active -> closed, and only active campaigns accept submissions.
//
// Layering follows the rest of the repo: domain entities and errors,
// application commands/queries behind ports, and postgres/memory/HTTP
// adapters. Lifecycle changes append to campaign_state_history so brand
// operators can audit who launched or closed a campaign and when.
package campaignservice
