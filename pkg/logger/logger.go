package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide sugared logger. Development mode emits
// console-friendly output, production mode emits JSON.
func New(mode string) *zap.SugaredLogger {
	if mode == "release" {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}
