package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pet-adoption-insights/internal/seed"
)

var seedOpts = seed.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the stores with a synthetic dataset",
	Long: `Creates shelters, users, pets (with profile and tags), adoptions with
feedback, and likes through the registry, so all three stores stay consistent.
Only works against local stores.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Shelters, "shelters", seedOpts.Shelters, "number of shelters")
	f.IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users")
	f.IntVar(&seedOpts.Pets, "pets", seedOpts.Pets, "number of pets")
	f.IntVar(&seedOpts.Adoptions, "adoptions", seedOpts.Adoptions, "number of adoptions (each with feedback)")
	f.IntVar(&seedOpts.Likes, "likes", seedOpts.Likes, "number of likes")
	f.Int64Var(&seedOpts.Seed, "seed", seedOpts.Seed, "random seed (0 = current time)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if serverURL != "" {
		return errors.New("seed requires local stores; drop --server")
	}
	l, err := openLocal(cmd.Context())
	if err != nil {
		return err
	}
	if l.Registry == nil {
		return errors.New("registry not configured")
	}

	sum, err := seed.Run(cmd.Context(), l.Registry, seedOpts)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if jsonOutput {
		return outputJSON(cmd, map[string]int{
			"shelters":       len(sum.ShelterIDs),
			"users":          len(sum.UserIDs),
			"pets":           len(sum.PetIDs),
			"adoptions":      sum.Adoptions,
			"likes":          sum.Likes,
			"partial_writes": sum.PartialWrites,
		})
	}
	cmd.Printf("Seeded %d shelters, %d users, %d pets, %d adoptions, %d likes\n",
		len(sum.ShelterIDs), len(sum.UserIDs), len(sum.PetIDs), sum.Adoptions, sum.Likes)
	if sum.PartialWrites > 0 {
		cmd.Printf("  %d partial writes (see logs)\n", sum.PartialWrites)
	}
	return nil
}
