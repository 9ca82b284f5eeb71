package event

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared logger used across all engine packages.
var Log = logrus.New()
