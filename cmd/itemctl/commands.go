package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-items/internal/engine"
	"github.com/KirkDiggler/rpg-items/internal/engine/advancement"
	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
)

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// itemView is the printed form of a prepared item
type itemView struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Type              entities.Kind          `json:"type"`
	Ability           string                 `json:"ability,omitempty"`
	Proficient        bool                   `json:"proficient"`
	AttackFormula     string                 `json:"attackFormula,omitempty"`
	SaveDC            *int                   `json:"saveDC,omitempty"`
	CriticalThreshold *int                   `json:"criticalThreshold,omitempty"`
	UsesMax           *int                   `json:"usesMax,omitempty"`
	Labels            entities.Labels        `json:"labels"`
	Damage            []entities.DamageLabel `json:"damage,omitempty"`
	ClassLink         string                 `json:"classLink,omitempty"`
}

func newItemView(it *entities.Item) itemView {
	v := itemView{ID: it.ID, Name: it.Name, Type: it.Type}
	if d := it.Derived; d != nil {
		v.Ability = d.Ability
		v.Proficient = d.Proficient
		v.AttackFormula = d.AttackFormula
		v.SaveDC = d.SaveDC
		v.CriticalThreshold = d.CriticalThreshold
		v.UsesMax = d.UsesMax
		v.Labels = d.Labels
		v.Damage = d.DerivedDamage
		v.ClassLink = d.ClassLink
	}
	return v
}

var prepareCmd = &cobra.Command{
	Use:   "prepare [actor-id]",
	Short: "Show the derived data of every item an actor owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := cmd.Context()
			got, err := a.repo.GetActor(ctx, documents.GetActorInput{ID: args[0]})
			if err != nil {
				return err
			}
			prepared, err := a.engine.PrepareActor(ctx, &engine.PrepareActorInput{Actor: got.Actor})
			if err != nil {
				return err
			}

			views := make([]itemView, 0, len(prepared.Actor.Items))
			for _, it := range prepared.Actor.Items {
				views = append(views, newItemView(it))
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"actor":    prepared.Actor.ID,
				"items":    views,
				"warnings": prepared.Warnings,
			})
		})
	},
}

var useCmd = &cobra.Command{
	Use:   "use [actor-id] [item-id]",
	Short: "Use an item, spending what it consumes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fastForward, _ := cmd.Flags().GetBool("fast-forward")
		overrides, err := overridesFromFlags(cmd)
		if err != nil {
			return err
		}

		return withApp(func(a *app) error {
			return runUse(cmd.Context(), a.items, &item.UseInput{
				ActorID:     args[0],
				ItemID:      args[1],
				Overrides:   overrides,
				FastForward: fastForward,
			}, cmd.OutOrStdout())
		})
	},
}

func runUse(ctx context.Context, items item.Service, input *item.UseInput, w io.Writer) error {
	out, err := items.Use(ctx, input)
	if err != nil {
		return err
	}
	if out.Cancelled {
		_, err = fmt.Fprintln(w, "Cancelled")
		return err
	}
	return printJSON(w, map[string]any{
		"usageId":     out.UsageID,
		"config":      out.Config,
		"consumption": out.Consumption,
		"deleted":     out.DeletedItem,
	})
}

// overridesFromFlags sets only what the user passed, leaving the rest to the
// item's defaults
func overridesFromFlags(cmd *cobra.Command) (*usage.Overrides, error) {
	flags := cmd.Flags()
	o := &usage.Overrides{}

	bools := map[string]**bool{
		"consume-quantity": &o.ConsumeQuantity,
		"consume-recharge": &o.ConsumeRecharge,
		"consume-resource": &o.ConsumeResource,
		"consume-uses":     &o.ConsumeUsage,
		"consume-slot":     &o.ConsumeSpellSlot,
		"template":         &o.CreateMeasuredTemplate,
	}
	for name, field := range bools {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return nil, err
		}
		*field = &v
	}

	if flags.Changed("slot") {
		v, err := flags.GetString("slot")
		if err != nil {
			return nil, err
		}
		o.SlotLevel = &v
	}
	if flags.Changed("amount") {
		v, err := flags.GetInt("amount")
		if err != nil {
			return nil, err
		}
		o.ResourceAmount = &v
	}
	return o, nil
}

var attackCmd = &cobra.Command{
	Use:   "attack [actor-id] [item-id]",
	Short: "Roll an attack with an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		advantage, _ := cmd.Flags().GetBool("advantage")
		disadvantage, _ := cmd.Flags().GetBool("disadvantage")

		return withApp(func(a *app) error {
			out, err := a.items.RollAttack(cmd.Context(), &item.AttackInput{
				ActorID:      args[0],
				ItemID:       args[1],
				Advantage:    advantage,
				Disadvantage: disadvantage,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"roll":        out.Roll,
				"consumption": out.Consumption,
			})
		})
	},
}

var damageCmd = &cobra.Command{
	Use:   "damage [actor-id] [item-id]",
	Short: "Roll the damage of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		critical, _ := cmd.Flags().GetBool("critical")
		versatile, _ := cmd.Flags().GetBool("versatile")
		spellLevel, _ := cmd.Flags().GetInt("spell-level")

		return withApp(func(a *app) error {
			out, err := a.items.RollDamage(cmd.Context(), &item.DamageInput{
				ActorID:    args[0],
				ItemID:     args[1],
				Critical:   critical,
				Versatile:  versatile,
				SpellLevel: spellLevel,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"roll":    out.Roll,
				"parts":   out.Parts,
				"healing": out.Healing,
			})
		})
	},
}

// advancementView is the printed form of one advancement
type advancementView struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Levels []int  `json:"levels"`
}

var advancementsCmd = &cobra.Command{
	Use:   "advancements [actor-id] [item-id]",
	Short: "List the advancements of an item over a level range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")

		return withApp(func(a *app) error {
			ctx := cmd.Context()
			got, err := a.repo.GetActor(ctx, documents.GetActorInput{ID: args[0]})
			if err != nil {
				return err
			}
			it := got.Actor.ItemByID(args[1])
			if it == nil {
				return fmt.Errorf("item %s not found on actor %s", args[1], args[0])
			}
			prepared, err := a.engine.PrepareItem(ctx, &engine.PrepareItemInput{Item: it, Actor: got.Actor})
			if err != nil {
				return err
			}

			if to <= 0 {
				to = a.rules.MaxLevel
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"advancements":         advancementViews(prepared.Derived.Advancement, prepared.Derived.Advancement.ForLevelRange(from, to)),
				"needingConfiguration": advancementViews(prepared.Derived.Advancement, prepared.Derived.Advancement.NeedingConfiguration),
			})
		})
	},
}

func advancementViews(idx *advancement.Index, list []*advancement.Advancement) []advancementView {
	views := make([]advancementView, 0, len(list))
	for _, adv := range list {
		views = append(views, advancementView{
			ID:     adv.ID,
			Type:   adv.Type,
			Title:  adv.DisplayTitle(),
			Levels: idx.Levels(adv.ID),
		})
	}
	return views
}

func init() {
	useCmd.Flags().Bool("fast-forward", false, "skip the confirmation prompt")
	useCmd.Flags().Bool("consume-quantity", false, "reduce the item's quantity")
	useCmd.Flags().Bool("consume-recharge", false, "spend the recharge")
	useCmd.Flags().Bool("consume-resource", false, "consume the linked resource")
	useCmd.Flags().Bool("consume-uses", false, "spend one of the item's uses")
	useCmd.Flags().Bool("consume-slot", false, "spend a spell slot")
	useCmd.Flags().Bool("template", false, "place a measured template")
	useCmd.Flags().String("slot", "", "spell slot to cast from, e.g. spell3 or pact")
	useCmd.Flags().Int("amount", 0, "resource amount, negative to restore")

	attackCmd.Flags().Bool("advantage", false, "roll with advantage")
	attackCmd.Flags().Bool("disadvantage", false, "roll with disadvantage")

	damageCmd.Flags().Bool("critical", false, "double the damage dice")
	damageCmd.Flags().Bool("versatile", false, "use versatile damage")
	damageCmd.Flags().Int("spell-level", 0, "slot level the spell is cast at")

	advancementsCmd.Flags().Int("from", 0, "first level")
	advancementsCmd.Flags().Int("to", 0, "last level, the maximum level when 0")

	rootCmd.AddCommand(prepareCmd, useCmd, attackCmd, damageCmd, advancementsCmd)
}
