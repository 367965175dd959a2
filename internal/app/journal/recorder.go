package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dep2p/go-connectivity/internal/core/eventbus"
	"github.com/dep2p/go-connectivity/pkg/interfaces"
	"github.com/dep2p/go-connectivity/pkg/types"
)

// recordTimeout 单次写入的最长时间
const recordTimeout = 5 * time.Second

// Recorder 从事件总线消费状态变更并写入 Journal
type Recorder struct {
	journal *Journal
	sub     interfaces.Subscription
	done    chan struct{}
	once    sync.Once
}

// NewRecorder 订阅 bus 上的状态变更
func NewRecorder(j *Journal, bus interfaces.EventBus) (*Recorder, error) {
	sub, err := bus.Subscribe(new(types.EvtStatusChanged), eventbus.BufSize(64), eventbus.Name("journal"))
	if err != nil {
		return nil, fmt.Errorf("subscribe status events: %w", err)
	}
	return &Recorder{
		journal: j,
		sub:     sub,
		done:    make(chan struct{}),
	}, nil
}

// Start 启动后台写入
func (r *Recorder) Start() {
	go r.loop()
}

func (r *Recorder) loop() {
	defer close(r.done)

	for raw := range r.sub.Out() {
		evt, ok := raw.(types.EvtStatusChanged)
		if !ok {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := r.journal.Record(ctx, evt); err != nil {
			logger.Warn("记录状态变更失败", "current", evt.Current, "err", err)
		}
		cancel()
	}
}

// Stop 取消订阅并等待写入结束
//
// 必须在 Start 之后调用。
func (r *Recorder) Stop() error {
	var err error
	r.once.Do(func() {
		err = r.sub.Close()
		<-r.done
	})
	return err
}
