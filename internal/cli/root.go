// Package cli implementa el comando insights: las seis consultas agregadas,
// contra los stores locales o contra un servidor remoto (--server).
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"pet-adoption-insights/internal/adapters/insightsapi"
	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/seed"
)

// Backend son las seis consultas. Lo implementan insights.Service y
// insightsapi.Client.
type Backend interface {
	RecommendPets(ctx context.Context, userID int64, limit int) ([]catalog.Pet, bool, error)
	MostAdoptablePets(ctx context.Context, limit int) ([]catalog.Pet, error)
	UserConnections(ctx context.Context, userID int64, limit int) ([]catalog.User, bool, error)
	LowEngagementPets(ctx context.Context) ([]catalog.Pet, error)
	UserEngagement(ctx context.Context, userID int64) (insights.EngagementReport, bool, error)
	ForecastDemand(ctx context.Context) (insights.Forecast, error)
}

var (
	_ Backend = (*insights.Service)(nil)
	_ Backend = (*insightsapi.Client)(nil)
)

// Local agrupa lo que se construye sobre los stores del proceso.
type Local struct {
	Insights Backend
	Registry seed.Writer
	Close    func(context.Context) error
}

// LocalFactory abre los stores solo cuando un comando los necesita.
type LocalFactory func(ctx context.Context) (*Local, error)

var (
	serverURL  string
	jsonOutput bool
	timeout    time.Duration

	localFactory LocalFactory
	local        *Local
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Pet adoption insights across Postgres, MongoDB and Neo4j",
	Long: `Runs the cross-store aggregation queries: recommendations, adoptability,
user connections, low engagement, user engagement and demand forecast.

Without --server the stores come from the environment (POSTGRES_*, MONGO_*,
NEO4J_*); unset stores fall back to in-memory adapters.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "base URL of a running insights API (e.g. http://localhost:8080)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout when using --server")
}

// SetLocalFactory registra cómo construir el backend local.
func SetLocalFactory(f LocalFactory) {
	localFactory = f
	local = nil
}

// Execute corre el comando raíz y cierra los stores locales si se abrieron.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeLocal(ctx); err == nil {
		err = cerr
	}
	return err
}

func backend(ctx context.Context) (Backend, error) {
	if serverURL != "" {
		return insightsapi.New(serverURL, timeout)
	}
	l, err := openLocal(ctx)
	if err != nil {
		return nil, err
	}
	return l.Insights, nil
}

func openLocal(ctx context.Context) (*Local, error) {
	if local != nil {
		return local, nil
	}
	if localFactory == nil {
		return nil, errors.New("local stores not configured")
	}
	l, err := localFactory(ctx)
	if err != nil {
		return nil, err
	}
	local = l
	return local, nil
}

func closeLocal(ctx context.Context) error {
	if local == nil || local.Close == nil {
		local = nil
		return nil
	}
	err := local.Close(ctx)
	local = nil
	return err
}
