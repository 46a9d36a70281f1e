package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-plugin"

	notifierrpc "fast/internal/modules/notify/adapter/out/rpc"
)

// pending is the on-disk shape of one scheduled notification. The host has
// no delivery mechanism of its own; this reference plugin just records what
// would fire, so `fast-notifier dump` (or cat) shows the live schedule.
type pending struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // once | daily
	At        time.Time `json:"at,omitempty"`
	Hour      int       `json:"hour,omitempty"`
	Minute    int       `json:"minute,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

type server struct {
	mu   sync.Mutex
	path string
}

func newServer() (*server, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	return &server{path: filepath.Join(home, ".fast", "pending-notifications.json")}, nil
}

func (s *server) load() (map[string]pending, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]pending{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string]pending{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *server) save(entries map[string]pending) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func (s *server) put(items ...pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	for _, item := range items {
		item.UpdatedAt = time.Now()
		entries[item.ID] = item
	}
	return s.save(entries)
}

func (s *server) ScheduleOnce(_ context.Context, in *notifierrpc.ScheduleOnceRequest) (*notifierrpc.Empty, error) {
	err := s.put(pending{
		ID:    in.ID,
		Kind:  "once",
		At:    in.At,
		Title: in.Content.Title,
		Body:  in.Content.Body,
	})
	return &notifierrpc.Empty{}, err
}

func (s *server) ScheduleDaily(_ context.Context, in *notifierrpc.ScheduleDailyRequest) (*notifierrpc.Empty, error) {
	err := s.put(pending{
		ID:     in.ID,
		Kind:   "daily",
		Hour:   in.Hour,
		Minute: in.Minute,
		Title:  in.Content.Title,
		Body:   in.Content.Body,
	})
	return &notifierrpc.Empty{}, err
}

func (s *server) ScheduleSet(_ context.Context, in *notifierrpc.ScheduleSetRequest) (*notifierrpc.Empty, error) {
	items := make([]pending, 0, len(in.Entries))
	for _, entry := range in.Entries {
		items = append(items, pending{
			ID:     entry.ID,
			Kind:   "daily",
			Hour:   entry.Hour,
			Minute: entry.Minute,
			Title:  entry.Content.Title,
			Body:   entry.Content.Body,
		})
	}
	return &notifierrpc.Empty{}, s.put(items...)
}

func (s *server) Cancel(_ context.Context, in *notifierrpc.CancelRequest) (*notifierrpc.Empty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return &notifierrpc.Empty{}, err
	}
	for _, id := range in.IDs {
		delete(entries, id)
	}
	return &notifierrpc.Empty{}, s.save(entries)
}

func dump(s *server) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entry := entries[id]
		switch entry.Kind {
		case "once":
			fmt.Printf("%s\tonce\t%s\t%s\n", entry.ID, entry.At.Format(time.RFC3339), entry.Title)
		default:
			fmt.Printf("%s\tdaily\t%02d:%02d\t%s\n", entry.ID, entry.Hour, entry.Minute, entry.Title)
		}
	}
	return nil
}

func main() {
	srv, err := newServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "dump" {
		if err := dump(srv); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifierrpc.HandshakeConfig,
		Plugins:         notifierrpc.PluginMap(srv),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
