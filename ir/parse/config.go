package parse

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mirop/mirop/ir"
)

// Config represents a parse configuration.
type Config struct {
	src  io.Reader
	path string
}

// FromFile configures parsing from the file at path. The file is
// opened by Build.
func FromFile(path string) *Config {
	return &Config{path: path}
}

// FromReader configures parsing from r.
func FromReader(r io.Reader) *Config {
	return &Config{src: r, path: "<reader>"}
}

// Build parses the configured source into a module.
func (c *Config) Build() (*ir.Module, error) {
	src := c.src
	if src == nil {
		f, err := os.Open(c.path)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", c.path)
		}
		defer f.Close()
		src = f
	}
	p := newParser(src)
	m, err := p.parse()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", c.path)
	}
	return m, nil
}
