package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/watchfire-io/wallboard/internal/config"
	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/notify"
	"github.com/watchfire-io/wallboard/internal/server"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// backend is the agent list a command operates on: the running instance when
// there is one, otherwise a registry seeded from the roster for this command only.
type backend interface {
	Agents() ([]models.Agent, error)
	SetStatus(name, status string) (*server.StatusResponse, error)
	Export() (string, error)
	Import(entries []exchange.Entry) (*server.ImportResponse, error)
	Remote() bool
}

func openBackend() (backend, error) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check instance status: %w", err)
	}
	if running {
		return &remoteBackend{client: server.NewClient(info.Host, info.Port)}, nil
	}
	return newLocalBackend()
}

type remoteBackend struct {
	client *server.Client
}

func (b *remoteBackend) Agents() ([]models.Agent, error) {
	resp, err := b.client.Agents()
	if err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

func (b *remoteBackend) SetStatus(name, status string) (*server.StatusResponse, error) {
	return b.client.SetStatus(name, status)
}

func (b *remoteBackend) Export() (string, error) {
	return b.client.Export()
}

func (b *remoteBackend) Import(entries []exchange.Entry) (*server.ImportResponse, error) {
	return b.client.Import(entries)
}

func (b *remoteBackend) Remote() bool { return true }

type localBackend struct {
	dispatcher *wallboard.Dispatcher
}

func newLocalBackend() (*localBackend, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	roster, err := config.LoadRoster()
	if err != nil {
		return nil, err
	}
	registry, err := wallboard.NewRegistry(roster.Agents)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	gateway := notify.New(settings.Notifications.Enabled, settings.Notifications.Icon, logger)
	return &localBackend{
		dispatcher: wallboard.NewDispatcher(registry, gateway, nil, wallboard.WithLogger(logger)),
	}, nil
}

func (b *localBackend) Agents() ([]models.Agent, error) {
	return b.dispatcher.Registry().Snapshot(), nil
}

func (b *localBackend) SetStatus(name, status string) (*server.StatusResponse, error) {
	ev, err := b.dispatcher.Dispatch(context.Background(), name, models.AgentStatus(status), wallboard.OriginRemote)
	if err != nil {
		return nil, err
	}
	return server.NewStatusResponse(ev), nil
}

func (b *localBackend) Export() (string, error) {
	return exchange.ExportText(b.dispatcher.Registry().All()), nil
}

func (b *localBackend) Import(entries []exchange.Entry) (*server.ImportResponse, error) {
	report, err := exchange.Apply(context.Background(), b.dispatcher, entries, wallboard.OriginRemote)
	if err != nil {
		return nil, err
	}
	return server.NewImportResponse(report), nil
}

func (b *localBackend) Remote() bool { return false }
