package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
)

// scenario is a YAML file of actors and the items they own. Documents use
// the same field names as the stored JSON.
type scenario struct {
	Actors []*entities.Actor `json:"actors"`
}

// decodeScenario reads YAML into the JSON shaped entities. The YAML is
// decoded generically first so the entities' own JSON decoding picks the
// item variants.
func decodeScenario(data []byte) (*scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	raw, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to convert scenario: %w", err)
	}

	var s scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	for i, actor := range s.Actors {
		if actor == nil || actor.ID == "" {
			return nil, fmt.Errorf("actor %d has no _id", i)
		}
		for j, it := range actor.Items {
			if it == nil {
				return nil, fmt.Errorf("actor %s item %d is empty", actor.ID, j)
			}
			if err := it.Validate(); err != nil {
				return nil, fmt.Errorf("actor %s item %s: %w", actor.ID, it.ID, err)
			}
		}
	}
	return &s, nil
}

// stringKeys turns the map[any]any YAML produces for non-string keys, such
// as level tables, into something JSON can encode
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = stringKeys(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = stringKeys(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = stringKeys(child)
		}
		return t
	default:
		return v
	}
}

var loadCmd = &cobra.Command{
	Use:   "load [scenario.yaml]",
	Short: "Store the actors of a scenario, replacing existing ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read scenario: %w", err)
		}
		s, err := decodeScenario(data)
		if err != nil {
			return err
		}

		return withApp(func(a *app) error {
			return loadScenario(cmd.Context(), a.repo, s, cmd.OutOrStdout())
		})
	},
}

func loadScenario(ctx context.Context, repo documents.Repository, s *scenario, out io.Writer) error {
	for _, actor := range s.Actors {
		if _, err := repo.PutActor(ctx, documents.PutActorInput{Actor: actor}); err != nil {
			return fmt.Errorf("failed to store actor %s: %w", actor.ID, err)
		}
		fmt.Fprintf(out, "Loaded %s (%s) with %d items\n", actor.Name, actor.ID, len(actor.Items))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
