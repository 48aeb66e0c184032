package config

import (
	"os"
	"time"
)

const (
	// Auth
	TestVerificationCode = "123456"
	TokenTTL             = 72 * time.Hour
	TokenIssuer          = "momentmap-service"

	// Users
	DefaultAvatar = "👤"

	// Bubbles
	SweepInterval = 60 * time.Second

	// Server
	DefaultAddr     = ":3000"
	StaticDir       = "./public"
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	MaxHeaderBytes  = 1 << 20
	ShutdownTimeout = 5 * time.Second
)

// JWTSecret returns the HMAC signing key for session tokens. Read from
// the environment so deployments can rotate it without a rebuild.
func JWTSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("momentmap-dev-secret")
}

// ServerAddr returns the listen address, overridable via PORT.
func ServerAddr() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return DefaultAddr
}
