package server

import (
	"os"

	pkgutil "github.com/faciam-dev/customfields/pkg/util"
)

// allowedOrigins returns the list of origins allowed for CORS.
func allowedOrigins() []string {
	return pkgutil.GetEnvList("ALLOWED_ORIGINS", "http://localhost:5173")
}

// jwtSecret returns JWT_SECRET. Authentication is disabled when it is empty.
func jwtSecret() string {
	return os.Getenv("JWT_SECRET")
}
