package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey        = "fast-notifier"
	serviceName         = "fast.notifier.v1.Notifier"
	jsonCodecName       = "json"
	methodScheduleOnce  = "/" + serviceName + "/ScheduleOnce"
	methodScheduleDaily = "/" + serviceName + "/ScheduleDaily"
	methodScheduleSet   = "/" + serviceName + "/ScheduleSet"
	methodCancel        = "/" + serviceName + "/Cancel"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FAST_NOTIFIER",
	MagicCookieValue: "fast",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Content struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ScheduleOnceRequest struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Content Content   `json:"content"`
}

type ScheduleDailyRequest struct {
	ID      string  `json:"id"`
	Hour    int     `json:"hour"`
	Minute  int     `json:"minute"`
	Content Content `json:"content"`
}

type SetEntry struct {
	ID      string  `json:"id"`
	Hour    int     `json:"hour"`
	Minute  int     `json:"minute"`
	Content Content `json:"content"`
}

type ScheduleSetRequest struct {
	Entries []SetEntry `json:"entries"`
}

type CancelRequest struct {
	IDs []string `json:"ids"`
}

type NotifierServer interface {
	ScheduleOnce(ctx context.Context, in *ScheduleOnceRequest) (*Empty, error)
	ScheduleDaily(ctx context.Context, in *ScheduleDailyRequest) (*Empty, error)
	ScheduleSet(ctx context.Context, in *ScheduleSetRequest) (*Empty, error)
	Cancel(ctx context.Context, in *CancelRequest) (*Empty, error)
}

type NotifierClient interface {
	ScheduleOnce(ctx context.Context, in *ScheduleOnceRequest) error
	ScheduleDaily(ctx context.Context, in *ScheduleDailyRequest) error
	ScheduleSet(ctx context.Context, in *ScheduleSetRequest) error
	Cancel(ctx context.Context, in *CancelRequest) error
}

type notifierClient struct {
	conn *grpc.ClientConn
}

func NewNotifierClient(conn *grpc.ClientConn) NotifierClient {
	return &notifierClient{conn: conn}
}

func (c *notifierClient) ScheduleOnce(ctx context.Context, in *ScheduleOnceRequest) error {
	return c.conn.Invoke(ctx, methodScheduleOnce, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *notifierClient) ScheduleDaily(ctx context.Context, in *ScheduleDailyRequest) error {
	return c.conn.Invoke(ctx, methodScheduleDaily, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *notifierClient) ScheduleSet(ctx context.Context, in *ScheduleSetRequest) error {
	return c.conn.Invoke(ctx, methodScheduleSet, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *notifierClient) Cancel(ctx context.Context, in *CancelRequest) error {
	return c.conn.Invoke(ctx, methodCancel, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func RegisterNotifierServer(server grpc.ServiceRegistrar, impl NotifierServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*NotifierServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "ScheduleOnce",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ScheduleOnceRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ScheduleOnce(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodScheduleOnce}
					handler := func(ctx context.Context, req any) (any, error) {
						typed, ok := req.(*ScheduleOnceRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ScheduleOnce(ctx, typed)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ScheduleDaily",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ScheduleDailyRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ScheduleDaily(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodScheduleDaily}
					handler := func(ctx context.Context, req any) (any, error) {
						typed, ok := req.(*ScheduleDailyRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ScheduleDaily(ctx, typed)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ScheduleSet",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ScheduleSetRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ScheduleSet(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodScheduleSet}
					handler := func(ctx context.Context, req any) (any, error) {
						typed, ok := req.(*ScheduleSetRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ScheduleSet(ctx, typed)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Cancel",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &CancelRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Cancel(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCancel}
					handler := func(ctx context.Context, req any) (any, error) {
						typed, ok := req.(*CancelRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Cancel(ctx, typed)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/notifier-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl NotifierServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterNotifierServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewNotifierClient(conn), nil
}

func PluginMap(impl NotifierServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
