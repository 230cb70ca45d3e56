// Package backend provides the Tunewave API server.

// The actual implementation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Authentication and authorization services
// - internal/recommendations: Personalized recommendation engine
// - internal/database: Database connection and migrations
// - internal/cache: Redis client backing the rate limiter
// - internal/middleware: HTTP middleware (request ids, logging, rate limiting)
// - internal/metrics: Prometheus instrumentation
// - internal/seed: Development data seeding

// See the individual package documentation for detailed API reference.
package backend
