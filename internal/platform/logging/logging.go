package logging

import "go.uber.org/zap"

// New builds the process-wide logger. Production gets the JSON encoder at
// info level; anything else gets the human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
