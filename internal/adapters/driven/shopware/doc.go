// Package shopware implements the admin API client for Shopware 6 shops.
//
// The client speaks the admin REST API under /api of a shop and implements
// [driven.AdminClient]. It comprises the following components:
//
//   - Client: handles request/response plumbing, pagination and retries
//   - RateLimiter: paces requests and honours server throttle responses
//   - Config: connection settings of one shop
//
// # Authentication
//
// The client authenticates with the OAuth 2.0 client-credentials grant
// against <shop>/api/oauth/token. Client id and secret belong to an
// integration created in the shop administration under Settings > System >
// Integrations; the integration needs write access to products and media.
// Tokens are acquired lazily on the first request and refreshed
// transparently when they expire.
//
// # Error handling
//
// Non-success responses surface as [driven.APIError] carrying the HTTP
// status and the error details of the response body. HTTP 5xx and 429
// responses are retried up to MaxRetries times with a growing delay before
// the error is returned.
package shopware
