package asset

import (
	"fmt"
	"io/fs"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/internal/storage"
	"github.com/Ealfred1/ResQ-X-checklist/internal/version"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

var Module = fx.Module("asset",
	fx.Provide(NewSource),
)

// SourceParams are the dependencies of NewSource.
type SourceParams struct {
	fx.In

	Config  *config.Config
	Storage *storage.Service
	Static  fs.FS `name:"static"`
	Log     *slog.Logger
}

// NewSource returns the Source selected by ASSET_SOURCE.
func NewSource(p SourceParams) (Source, error) {
	log := p.Log.With(logger.Scope("asset"))

	switch p.Config.Asset.Source {
	case config.AssetSourceEmbedded:
		log.Info("serving guide from embedded files")
		return NewFSSource(p.Static), nil
	case config.AssetSourceS3:
		log.Info("serving guide from object storage", slog.String("bucket", p.Storage.Bucket()))
		return NewObjectSource(p.Storage), nil
	case config.AssetSourceHTTP:
		log.Info("serving guide from remote origin", slog.String("base_url", p.Config.Asset.BaseURL))
		return NewHTTPSource(p.Config.Asset.BaseURL, version.UserAgent("landing")), nil
	default:
		return nil, fmt.Errorf("unknown asset source %q", p.Config.Asset.Source)
	}
}
