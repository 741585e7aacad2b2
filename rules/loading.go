package rules

import (
	"github.com/rs/zerolog"

	"iptrust/trust"
)

// Loader reads and writes rule documents on a file system.
type Loader struct {
	logger zerolog.Logger
	fs     trust.FileSystem
}

// NewLoader creates a rule document loader.
func NewLoader(logger zerolog.Logger, fs trust.FileSystem) *Loader {
	return &Loader{logger: logger, fs: fs}
}

// LoadFile reads and validates the rule document at the given path.
func (l *Loader) LoadFile(path string) (*Collection, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("Error while reading rule document")
		return nil, err
	}

	c, err := LoadDocument(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("Error while parsing rule document")
		return nil, err
	}

	l.logger.Info().Str("file", path).Int("ruleCount", c.Len()).Msg("Loaded rule document")
	return c, nil
}

// SaveFile serializes the collection and writes it to the given path.
func (l *Loader) SaveFile(path string, c *Collection) error {
	data, err := SaveDocument(c)
	if err != nil {
		return err
	}

	if err = l.fs.WriteFile(path, data); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("Error while writing rule document")
		return err
	}

	l.logger.Info().Str("file", path).Int("ruleCount", c.Len()).Msg("Saved rule document")
	return nil
}
