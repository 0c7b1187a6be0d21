// Package ipkitservice manages IP kits: brand-curated bundles of approved
// assets that creators remix in campaigns. Each asset may carry a registry
// anchor, the parent IP identifier used when an approved derivative is
// registered externally. Asset files live in a blob store (S3 in production)
// keyed as ipkits/<kit>/<asset>.
package ipkitservice
