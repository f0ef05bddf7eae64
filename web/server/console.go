package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-rect-raytracer/pkg/core"
)

// WebLogger implements core.Logger by writing render progress to the server
// log, tagged with the render it belongs to
type WebLogger struct {
	renderID string
	out      *log.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, out *log.Logger) core.Logger {
	return &WebLogger{
		renderID: renderID,
		out:      out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if message == "" {
		return
	}
	wl.out.Printf("[%s] %s", wl.renderID, message)
}
