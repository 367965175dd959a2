package journal

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-connectivity/config"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

// Params 日志模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	EventBus   interfaces.EventBus
}

// Module 返回 Fx 模块
//
// 仅在 Journal.Enabled 时装配。
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(ProvideJournal),
	)
}

// ProvideJournal 打开数据库并在启动时开始记录
func ProvideJournal(lc fx.Lifecycle, p Params) (*Journal, error) {
	jc := config.DefaultJournalConfig()
	if p.UnifiedCfg != nil {
		jc = p.UnifiedCfg.Journal
	}

	j, err := Open(jc.Path, jc.Retain)
	if err != nil {
		return nil, err
	}

	var rec *Recorder
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r, err := NewRecorder(j, p.EventBus)
			if err != nil {
				return err
			}
			rec = r
			rec.Start()
			logger.Info("状态变更日志已启用", "path", jc.Path, "retain", jc.Retain)
			return nil
		},
		OnStop: func(_ context.Context) error {
			var err error
			if rec != nil {
				err = rec.Stop()
			}
			return multierr.Append(err, j.Close())
		},
	})
	return j, nil
}
