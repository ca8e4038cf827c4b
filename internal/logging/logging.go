// Package logging builds the process root logger.
package logging

import (
	"io"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New returns a module logger at the named level ("debug", "info", ...),
// writing text to out. A nil out keeps logrus' default of stderr.
func New(level string, out io.Writer) (*modular.ModuleLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	base := logrus.New()
	if out != nil {
		base.SetOutput(out)
	}
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(lvl)

	logger := modular.NewRootLogger(base).GetModuleLogger()
	logger.SetLevel(lvl)
	return &logger, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *modular.ModuleLogger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	logger := modular.NewRootLogger(base).GetModuleLogger()
	return &logger
}
