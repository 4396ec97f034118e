package app

import "github.com/okian/marquee/pkg/logger"

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger replaces the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithArtifactPaths points the service at the training artifacts.
func WithArtifactPaths(schemaPath, modelPath, rankingsPath string) Option {
	return func(s *Service) {
		if schemaPath != "" {
			s.schemaPath = schemaPath
		}
		if modelPath != "" {
			s.modelPath = modelPath
		}
		if rankingsPath != "" {
			s.rankingsPath = rankingsPath
		}
	}
}
