package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pet-adoption-insights/internal/domain/insights"
)

var (
	recommendLimit   int
	adoptableLimit   int
	connectionsLimit int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [user-id]",
	Short: "Recommend available pets for a user",
	Long: `Ranks available pets by how many of the user's preferred tags they carry.
Pets the user already adopted are excluded.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

var adoptableCmd = &cobra.Command{
	Use:   "adoptable",
	Short: "List the most adoptable available pets",
	Long:  `Scores available pets by like count plus average feedback rating.`,
	Args:  cobra.NoArgs,
	RunE:  runAdoptable,
}

var connectionsCmd = &cobra.Command{
	Use:   "connections [user-id]",
	Short: "Find users most similar to a user",
	Long: `Sums shared likes, shared preferred tags, shared adoptions and shared
feedback across the three stores.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnections,
}

var lowEngagementCmd = &cobra.Command{
	Use:   "low-engagement",
	Short: "List available pets with no likes and no feedback",
	Args:  cobra.NoArgs,
	RunE:  runLowEngagement,
}

var engagementCmd = &cobra.Command{
	Use:   "engagement [user-id]",
	Short: "Summarise a user's likes, feedbacks and adoptions",
	Args:  cobra.ExactArgs(1),
	RunE:  runEngagement,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Compare demand (likes) against supply (available pets)",
	Long:  `Reports demand, supply and demand/supply ratio per breed and per tag.`,
	Args:  cobra.NoArgs,
	RunE:  runForecast,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", insights.DefaultLimit, "maximum number of results")
	adoptableCmd.Flags().IntVarP(&adoptableLimit, "limit", "n", insights.DefaultLimit, "maximum number of results")
	connectionsCmd.Flags().IntVarP(&connectionsLimit, "limit", "n", insights.DefaultLimit, "maximum number of results")

	rootCmd.AddCommand(recommendCmd, adoptableCmd, connectionsCmd, lowEngagementCmd, engagementCmd, forecastCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	pets, found, err := b.RecommendPets(cmd.Context(), userID, recommendLimit)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}
	if !found {
		cmd.Println(notFoundMsg)
		return nil
	}
	return outputPets(cmd, fmt.Sprintf("Top recommended pets for user %d", userID), pets)
}

func runAdoptable(cmd *cobra.Command, _ []string) error {
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	pets, err := b.MostAdoptablePets(cmd.Context(), adoptableLimit)
	if err != nil {
		return fmt.Errorf("adoptable failed: %w", err)
	}
	return outputPets(cmd, fmt.Sprintf("Most adoptable pets (top %d)", adoptableLimit), pets)
}

func runConnections(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	users, found, err := b.UserConnections(cmd.Context(), userID, connectionsLimit)
	if err != nil {
		return fmt.Errorf("connections failed: %w", err)
	}
	if !found {
		cmd.Println(notFoundMsg)
		return nil
	}
	return outputUsers(cmd, fmt.Sprintf("Top connections for user %d", userID), users)
}

func runLowEngagement(cmd *cobra.Command, _ []string) error {
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	pets, err := b.LowEngagementPets(cmd.Context())
	if err != nil {
		return fmt.Errorf("low-engagement failed: %w", err)
	}
	return outputPets(cmd, "Low engagement pets", pets)
}

func runEngagement(cmd *cobra.Command, args []string) error {
	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	rep, found, err := b.UserEngagement(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("engagement failed: %w", err)
	}
	if !found {
		cmd.Println(notFoundMsg)
		return nil
	}
	return outputEngagement(cmd, rep)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	b, err := backend(cmd.Context())
	if err != nil {
		return err
	}

	fc, err := b.ForecastDemand(cmd.Context())
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}
	return outputForecast(cmd, fc)
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}
