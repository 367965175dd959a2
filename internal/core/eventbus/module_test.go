package eventbus

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-connectivity/pkg/interfaces"
)

func TestModule_Lifecycle(t *testing.T) {
	var bus interfaces.EventBus

	app := fxtest.New(t,
		Module(),
		fx.Populate(&bus),
	)
	app.RequireStart()

	if bus == nil {
		t.Fatal("EventBus not injected by Fx")
	}
	sub, err := bus.Subscribe(new(testEvent))
	if err != nil {
		t.Fatal(err)
	}

	app.RequireStop()

	if _, ok := <-sub.Out(); ok {
		t.Error("subscription should be closed on stop")
	}
}
