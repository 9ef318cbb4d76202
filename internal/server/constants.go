package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Authentication required"
	ErrMsgInvalidToken    = "Invalid or expired token"
	ErrMsgTooManyRequests = "Too many requests. Please try again later."
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertRateLimit  = "SECURITY ALERT: Client is being rate limited"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderRequestID      = "X-Request-ID"
	HeaderRetryAfter     = "Retry-After"

	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderMaxAge       = "Access-Control-Max-Age"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"

	HeaderValueCORSMethods = "GET, POST, DELETE, OPTIONS"
	HeaderValueCORSHeaders = "Authorization, Content-Type"
	HeaderValueCORSMaxAge  = "600"

	BearerPrefix = "Bearer "
)

// Paths skipped by the request logger
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// Limits
const (
	MaxRequestBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second

	// Failed logins per IP within FailedAuthWindow before an alert is logged
	FailedAuthAlertThreshold = 5
	FailedAuthWindow         = 5 * time.Minute

	// Per-IP limiters idle longer than this are evicted
	LimiterTTL       = 10 * time.Minute
	MaxTrackedClient = 10000
)
