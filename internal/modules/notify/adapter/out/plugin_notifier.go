package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	notifyrpc "fast/internal/modules/notify/adapter/out/rpc"
	"fast/internal/modules/notify/domain"
	notifyout "fast/internal/modules/notify/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginNotifier reaches the platform notification service through a
// go-plugin gRPC boundary. Each call spins the plugin up, performs one
// RPC, and kills it; the plugin owns the durable pending set, so nothing
// is lost between calls.
type PluginNotifier struct {
	binary string
}

func NewPluginNotifier(binary string) notifyout.Notifier {
	return &PluginNotifier{binary: binary}
}

func (n *PluginNotifier) ScheduleOnce(ctx context.Context, id string, at time.Time, content domain.Content) error {
	return n.call(ctx, func(ctx context.Context, client notifyrpc.NotifierClient) error {
		return client.ScheduleOnce(ctx, &notifyrpc.ScheduleOnceRequest{
			ID:      id,
			At:      at,
			Content: notifyrpc.Content{Title: content.Title, Body: content.Body},
		})
	})
}

func (n *PluginNotifier) ScheduleDaily(ctx context.Context, id string, hour, minute int, content domain.Content) error {
	return n.call(ctx, func(ctx context.Context, client notifyrpc.NotifierClient) error {
		return client.ScheduleDaily(ctx, &notifyrpc.ScheduleDailyRequest{
			ID:      id,
			Hour:    hour,
			Minute:  minute,
			Content: notifyrpc.Content{Title: content.Title, Body: content.Body},
		})
	})
}

func (n *PluginNotifier) ScheduleSet(ctx context.Context, entries []domain.SetEntry) error {
	request := &notifyrpc.ScheduleSetRequest{Entries: make([]notifyrpc.SetEntry, 0, len(entries))}
	for _, entry := range entries {
		request.Entries = append(request.Entries, notifyrpc.SetEntry{
			ID:      entry.ID,
			Hour:    entry.Hour,
			Minute:  entry.Minute,
			Content: notifyrpc.Content{Title: entry.Content.Title, Body: entry.Content.Body},
		})
	}
	return n.call(ctx, func(ctx context.Context, client notifyrpc.NotifierClient) error {
		return client.ScheduleSet(ctx, request)
	})
}

func (n *PluginNotifier) Cancel(ctx context.Context, ids ...string) error {
	return n.call(ctx, func(ctx context.Context, client notifyrpc.NotifierClient) error {
		return client.Cancel(ctx, &notifyrpc.CancelRequest{IDs: ids})
	})
}

func (n *PluginNotifier) call(ctx context.Context, fn func(context.Context, notifyrpc.NotifierClient) error) error {
	client, closeFn, err := n.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	return fn(callCtx, client)
}

func (n *PluginNotifier) connect() (notifyrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifyrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifyrpc.PluginMap(nil),
		Cmd:              exec.Command(n.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(notifyrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier plugin: %w", err)
	}
	typed, ok := raw.(notifyrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
