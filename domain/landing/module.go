package landing

import (
	"go.uber.org/fx"

	"github.com/Ealfred1/ResQ-X-checklist/domain/signup"
)

var Module = fx.Module("landing",
	fx.Provide(
		fx.Annotate(StaticFS, fx.ResultTags(`name:"static"`)),
		newStateReader,
		NewHandler,
	),
	fx.Invoke(fx.Annotate(RegisterRoutes, fx.ParamTags(``, ``, `name:"static"`))),
)

func newStateReader(h *signup.Handler) StateReader {
	return h
}
