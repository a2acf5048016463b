package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/domain/insights"
)

var (
	examplesUser  int64
	examplesLimit int
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run all six queries for one user",
	Long: `Runs recommend, adoptable, connections, low-engagement, engagement and
forecast in sequence. A missing user is reported per query and the run continues.`,
	Args: cobra.NoArgs,
	RunE: runExamples,
}

func init() {
	examplesCmd.Flags().Int64VarP(&examplesUser, "user", "u", 1, "user id for the per-user queries")
	examplesCmd.Flags().IntVarP(&examplesLimit, "limit", "n", insights.DefaultLimit, "maximum number of results")
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	b, err := backend(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return runExamplesJSON(cmd, b)
	}

	// 1) Recomendaciones
	if pets, found, err := b.RecommendPets(ctx, examplesUser, examplesLimit); err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	} else if !found {
		cmd.Printf("Top recommended pets for user %d: %s\n", examplesUser, notFoundMsg)
	} else if err := outputPets(cmd, fmt.Sprintf("Top recommended pets for user %d", examplesUser), pets); err != nil {
		return err
	}

	// 2) Adoptables
	pets, err := b.MostAdoptablePets(ctx, examplesLimit)
	if err != nil {
		return fmt.Errorf("adoptable failed: %w", err)
	}
	if err := outputPets(cmd, fmt.Sprintf("Most adoptable pets (top %d)", examplesLimit), pets); err != nil {
		return err
	}

	// 3) Conexiones
	if users, found, err := b.UserConnections(ctx, examplesUser, examplesLimit); err != nil {
		return fmt.Errorf("connections failed: %w", err)
	} else if !found {
		cmd.Printf("Top connections for user %d: %s\n", examplesUser, notFoundMsg)
	} else if err := outputUsers(cmd, fmt.Sprintf("Top connections for user %d", examplesUser), users); err != nil {
		return err
	}

	// 4) Baja interacción
	low, err := b.LowEngagementPets(ctx)
	if err != nil {
		return fmt.Errorf("low-engagement failed: %w", err)
	}
	if err := outputPets(cmd, "Low engagement pets", low); err != nil {
		return err
	}

	// 5) Engagement
	if rep, found, err := b.UserEngagement(ctx, examplesUser); err != nil {
		return fmt.Errorf("engagement failed: %w", err)
	} else if !found {
		cmd.Printf("Engagement for user %d: %s\n", examplesUser, notFoundMsg)
	} else if err := outputEngagement(cmd, rep); err != nil {
		return err
	}

	// 6) Forecast
	fc, err := b.ForecastDemand(ctx)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}
	return outputForecast(cmd, fc)
}

// examplesReport es la salida --json de examples. Los campos por usuario
// quedan en null si el usuario no existe.
type examplesReport struct {
	UserID          int64                      `json:"user_id"`
	Recommendations []catalog.Pet              `json:"recommendations"`
	Adoptable       []catalog.Pet              `json:"adoptable"`
	Connections     []catalog.User             `json:"connections"`
	LowEngagement   []catalog.Pet              `json:"low_engagement"`
	Engagement      *insights.EngagementReport `json:"engagement"`
	Forecast        insights.Forecast          `json:"forecast"`
}

func runExamplesJSON(cmd *cobra.Command, b Backend) error {
	ctx := cmd.Context()
	rep := examplesReport{UserID: examplesUser}

	recs, found, err := b.RecommendPets(ctx, examplesUser, examplesLimit)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}
	if found {
		rep.Recommendations = recs
	}

	if rep.Adoptable, err = b.MostAdoptablePets(ctx, examplesLimit); err != nil {
		return fmt.Errorf("adoptable failed: %w", err)
	}

	conns, found, err := b.UserConnections(ctx, examplesUser, examplesLimit)
	if err != nil {
		return fmt.Errorf("connections failed: %w", err)
	}
	if found {
		rep.Connections = conns
	}

	if rep.LowEngagement, err = b.LowEngagementPets(ctx); err != nil {
		return fmt.Errorf("low-engagement failed: %w", err)
	}

	eng, found, err := b.UserEngagement(ctx, examplesUser)
	if err != nil {
		return fmt.Errorf("engagement failed: %w", err)
	}
	if found {
		rep.Engagement = &eng
	}

	if rep.Forecast, err = b.ForecastDemand(ctx); err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}
	return outputJSON(cmd, rep)
}
