package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/domain/insights"
)

const notFoundMsg = "user not found"

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputPets(cmd *cobra.Command, title string, pets []catalog.Pet) error {
	if jsonOutput {
		return outputJSON(cmd, pets)
	}
	cmd.Println(title + ":")
	if len(pets) == 0 {
		cmd.Println("  (none)")
		return nil
	}
	for i, p := range pets {
		cmd.Printf("  [%d] #%d %s (%s, %s, %d y/o)\n", i+1, p.ID, p.Name, p.Type, p.Breed, p.Age)
	}
	return nil
}

func outputUsers(cmd *cobra.Command, title string, users []catalog.User) error {
	if jsonOutput {
		return outputJSON(cmd, users)
	}
	cmd.Println(title + ":")
	if len(users) == 0 {
		cmd.Println("  (none)")
		return nil
	}
	for i, u := range users {
		cmd.Printf("  [%d] #%d %s\n", i+1, u.ID, u.Name)
	}
	return nil
}

func outputEngagement(cmd *cobra.Command, rep insights.EngagementReport) error {
	if jsonOutput {
		return outputJSON(cmd, rep)
	}
	cmd.Printf("Engagement for #%d %s:\n", rep.UserID, rep.Name)
	cmd.Printf("  likes:     %d\n", rep.Likes)
	cmd.Printf("  feedbacks: %d\n", rep.Feedbacks)
	cmd.Printf("  adoptions: %d\n", rep.Adoptions)
	return nil
}

func outputForecast(cmd *cobra.Command, fc insights.Forecast) error {
	if jsonOutput {
		return outputJSON(cmd, fc)
	}
	cmd.Println("Demand by breed:")
	printRows(cmd, fc.ByBreed)
	cmd.Println("Demand by tag:")
	printRows(cmd, fc.ByTag)
	return nil
}

func printRows(cmd *cobra.Command, rows map[string]insights.DemandSupply) {
	if len(rows) == 0 {
		cmd.Println("  (none)")
		return
	}
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r := rows[k]
		cmd.Printf("  %-20s demand=%-4d supply=%-4d ratio=%s\n", k, r.Demand, r.Supply, r.Ratio)
	}
}
