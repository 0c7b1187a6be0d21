// Package authorizationservice owns role assignments and permission checks.
// Roles are brand-scoped (brand_owner, brand_reviewer) or platform-wide
// (platform_admin, creator); a static policy maps roles to permissions such
// as submission.review and brand.manage. Checks are cache-first with a TTL
// and deny by default when lookups fail; grants and revokes invalidate the
// grantee's cache entry.
//
// Other modules consume this one through small authority ports
// (ReviewerAuthority, BrandAuthority) adapted in the composition root.
package authorizationservice
