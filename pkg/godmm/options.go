package godmm

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godmm/internal/driver"
	internalopts "github.com/d21d3q/godmm/internal/options"
)

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Protocol selects the frame format; empty means "dtm0660".
	Protocol string
	// Logger receives decoder diagnostics. Nil keeps the decoder silent.
	Logger logrus.Ext1FieldLogger
}

func (opts AnalyzeOptions) toInternal(ctx context.Context) (context.Context, driver.Driver, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	drv, err := driver.Lookup(internalopts.NormalizeProtocol(opts.Protocol))
	if err != nil {
		return ctx, nil, err
	}
	ctx = internalopts.WithLogger(ctx, opts.Logger)
	return ctx, drv, nil
}
