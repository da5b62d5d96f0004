package stats

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// DamageLabels renders each damage part for display. Owned items have their
// references replaced first. The formulas are never rolled.
func (c *Calculator) DamageLabels(item *entities.Item, actor *entities.Actor) []entities.DamageLabel {
	act := item.Action()
	if act == nil {
		return nil
	}

	var data formula.Data
	if actor != nil {
		data = c.RollData(item, actor)
	}

	labels := make([]entities.DamageLabel, 0, len(act.Damage.Parts))
	for _, part := range act.Damage.Parts {
		f := part.Formula
		if data != nil {
			f, _ = formula.Replace(f, data)
		}
		if simplified, err := c.evaluator.Simplify(f); err == nil {
			f = simplified
		}
		labels = append(labels, entities.DamageLabel{
			Formula:    f,
			DamageType: part.Type,
			Label:      strings.TrimSpace(f + " " + c.rules.DamageLabel(part.Type)),
		})
	}
	return labels
}

func (c *Calculator) activationLabels(l *entities.Labels, act *entities.ActivatedData, duration *int) {
	if act.Activation.Type != "" {
		l.Activation = c.rules.ActivationLabel(act.Activation.Type)
		if act.Activation.Cost > 0 {
			l.Activation = fmt.Sprintf("%d %s", act.Activation.Cost, l.Activation)
		}
	}

	if units := act.Range.Units; units != "" {
		unit := c.rules.UnitLabel(units)
		switch {
		case act.Range.Value == nil:
			l.Range = unit
		case act.Range.Long != nil && *act.Range.Long > 0:
			l.Range = fmt.Sprintf("%s / %s %s", formula.FormatNumber(*act.Range.Value), formula.FormatNumber(*act.Range.Long), unit)
		default:
			l.Range = fmt.Sprintf("%s %s", formula.FormatNumber(*act.Range.Value), unit)
		}
	}

	if t := act.Target; t.Type != "" {
		parts := []string{}
		if t.Value > 0 {
			parts = append(parts, formula.FormatNumber(t.Value))
		}
		if t.Units != "" {
			parts = append(parts, c.rules.UnitLabel(t.Units))
		}
		parts = append(parts, title(t.Type))
		l.Target = strings.Join(parts, " ")
	}

	if act.Duration.Units != "" {
		l.Duration = title(act.Duration.Units)
		if duration != nil {
			l.Duration = fmt.Sprintf("%d %s", *duration, l.Duration)
		}
	}

	if v := act.Recharge.Value; v > 0 {
		if v == 6 {
			l.Recharge = "Recharge [6]"
		} else {
			l.Recharge = fmt.Sprintf("Recharge [%d-6]", v)
		}
	}
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

func levelLabel(level int) string {
	if level == 0 {
		return "Cantrip"
	}
	suffix := "th"
	switch level {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s Level", level, suffix)
}
