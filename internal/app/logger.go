package app

import (
	"go.uber.org/zap"

	"courier-track/internal/logx"
)

// NewLogger builds the production logger shared by every component.
func NewLogger() (logx.Logger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logx.NewZapAdapter(base), nil
}
