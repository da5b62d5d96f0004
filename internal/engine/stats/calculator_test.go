package stats

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
	formulamock "github.com/KirkDiggler/rpg-items/internal/formula/mock"
	"github.com/KirkDiggler/rpg-items/internal/testutils/builders"
)

type CalculatorTestSuite struct {
	suite.Suite
	calc *Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (s *CalculatorTestSuite) SetupTest() {
	ev, err := formula.NewEvaluator()
	s.Require().NoError(err)

	s.calc, err = New(&Config{Rules: config.Defaults(), Evaluator: ev})
	s.Require().NoError(err)
}

func weapon(item *entities.Item) *entities.WeaponData {
	return item.System.(*entities.WeaponData)
}

func (s *CalculatorTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = New(&Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid config")
}

func (s *CalculatorTestSuite) TestAbilityFor() {
	testCases := []struct {
		name   string
		item   func() *entities.Item
		actor  *entities.Actor
		expect string
	}{
		{
			name:   "melee weapon uses strength",
			item:   func() *entities.Item { return builders.Weapon("w", "Longsword") },
			actor:  builders.NewActorBuilder().Build(),
			expect: "str",
		},
		{
			name: "explicit ability wins",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Longsword")
				weapon(item).Ability = "cha"
				return item
			},
			actor:  builders.NewActorBuilder().Build(),
			expect: "cha",
		},
		{
			name: "none means no ability",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Improvised")
				weapon(item).Ability = "none"
				return item
			},
			actor:  builders.NewActorBuilder().Build(),
			expect: "",
		},
		{
			name: "finesse prefers dexterity when higher",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Rapier")
				weapon(item).Properties = map[string]bool{"fin": true}
				return item
			},
			actor:  builders.NewActorBuilder().WithAbility("str", 12).WithAbility("dex", 16).Build(),
			expect: "dex",
		},
		{
			name: "finesse keeps strength when higher",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Rapier")
				weapon(item).Properties = map[string]bool{"fin": true}
				return item
			},
			actor:  builders.NewActorBuilder().WithAbility("str", 18).WithAbility("dex", 14).Build(),
			expect: "str",
		},
		{
			name: "finesse without an owner uses dexterity",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Rapier")
				weapon(item).Properties = map[string]bool{"fin": true}
				return item
			},
			expect: "dex",
		},
		{
			name: "ranged weapon uses dexterity",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Longbow")
				weapon(item).WeaponType = "martialR"
				weapon(item).ActionType = "mwak"
				return item
			},
			actor:  builders.NewActorBuilder().Build(),
			expect: "dex",
		},
		{
			name:   "spell uses spellcasting ability",
			item:   func() *entities.Item { return builders.Spell("s", "Fire Bolt", 0) },
			actor:  builders.NewActorBuilder().WithSpellcasting("wis").Build(),
			expect: "wis",
		},
		{
			name:   "spell falls back to default",
			item:   func() *entities.Item { return builders.Spell("s", "Fire Bolt", 0) },
			expect: "int",
		},
		{
			name:   "scroll uses spellcasting ability",
			item:   func() *entities.Item { return builders.Consumable("c", "Scroll", "scroll", 1) },
			actor:  builders.NewActorBuilder().WithSpellcasting("cha").Build(),
			expect: "cha",
		},
		{
			name:   "potion has none",
			item:   func() *entities.Item { return builders.Consumable("c", "Potion", "potion", 1) },
			actor:  builders.NewActorBuilder().Build(),
			expect: "",
		},
		{
			name: "spell attack feature resolves spellcasting placeholder",
			item: func() *entities.Item {
				item := builders.Feat("f", "Eldritch Touch")
				item.System.(*entities.FeatData).ActionType = "msak"
				return item
			},
			actor:  builders.NewActorBuilder().WithSpellcasting("cha").Build(),
			expect: "cha",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expect, s.calc.AbilityFor(tc.item(), tc.actor))
		})
	}
}

func (s *CalculatorTestSuite) TestProficient() {
	w := builders.Weapon("w", "Club")
	s.True(s.calc.Proficient(w))
	weapon(w).Proficient = nil
	s.False(s.calc.Proficient(w), "weapons need an explicit flag")

	eq := &entities.Item{ID: "e", Type: entities.KindEquipment, System: &entities.EquipmentData{}}
	s.True(s.calc.Proficient(eq), "equipment is proficient unless it says otherwise")

	tool := &entities.Item{ID: "t", Type: entities.KindTool, System: &entities.ToolData{Proficient: builders.Ptr(0.5)}}
	s.True(s.calc.Proficient(tool))
	s.InDelta(0.5, s.calc.proficiencyMultiplier(tool), 0.0001)
}

func (s *CalculatorTestSuite) TestAttackFormula() {
	testCases := []struct {
		name     string
		item     func() *entities.Item
		actor    func(item *entities.Item) *entities.Actor
		modifier string
		toHit    string
		parts    []string
	}{
		{
			name: "ability and proficiency",
			item: func() *entities.Item { return builders.Weapon("w", "Longsword") },
			actor: func(item *entities.Item) *entities.Actor {
				return builders.NewActorBuilder().WithAbility("str", 16).WithItems(item).Build()
			},
			modifier: "5",
			toHit:    "+ 5",
			parts:    []string{"@mod", "@prof"},
		},
		{
			name: "negative modifier keeps its sign",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Club")
				weapon(item).Proficient = builders.Ptr(false)
				return item
			},
			actor: func(item *entities.Item) *entities.Actor {
				return builders.NewActorBuilder().WithAbility("str", 8).WithItems(item).Build()
			},
			modifier: "-1",
			toHit:    "-1",
			parts:    []string{"@mod"},
		},
		{
			name: "actor bonus and dice",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Longsword")
				weapon(item).AttackBonus = "1"
				return item
			},
			actor: func(item *entities.Item) *entities.Actor {
				return builders.NewActorBuilder().
					WithAbility("str", 14).
					WithBonus("mwak", "1d4", "").
					WithItems(item).
					Build()
			},
			modifier: "1d4 + 5",
			toHit:    "+ 1d4 + 5",
			parts:    []string{"1", "@mod", "@prof", "1d4"},
		},
		{
			name: "ammunition bonus",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Longbow")
				weapon(item).WeaponType = "martialR"
				weapon(item).ActionType = "rwak"
				weapon(item).Consume = entities.Consume{Type: "ammo", Target: "arrows", Amount: 1}
				return item
			},
			actor: func(item *entities.Item) *entities.Actor {
				arrows := builders.Ammunition("arrows", "Arrows +1", 20)
				arrows.System.(*entities.ConsumableData).AttackBonus = "1"
				return builders.NewActorBuilder().WithAbility("dex", 16).WithItems(item, arrows).Build()
			},
			modifier: "6",
			toHit:    "+ 6",
			parts:    []string{"@mod", "@prof", "@ammo"},
		},
		{
			name: "empty ammunition adds nothing",
			item: func() *entities.Item {
				item := builders.Weapon("w", "Longbow")
				weapon(item).WeaponType = "martialR"
				weapon(item).ActionType = "rwak"
				weapon(item).Consume = entities.Consume{Type: "ammo", Target: "arrows", Amount: 1}
				return item
			},
			actor: func(item *entities.Item) *entities.Actor {
				arrows := builders.Ammunition("arrows", "Arrows +1", 0)
				arrows.System.(*entities.ConsumableData).AttackBonus = "1"
				return builders.NewActorBuilder().WithAbility("dex", 16).WithItems(item, arrows).Build()
			},
			modifier: "5",
			toHit:    "+ 5",
			parts:    []string{"@mod", "@prof"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			item := tc.item()
			actor := tc.actor(item)

			attack := s.calc.AttackFormula(item, actor)
			s.Equal(tc.parts, attack.Parts)
			s.Equal(tc.modifier, attack.Modifier)
			s.Equal(tc.toHit, attack.ToHit)
		})
	}
}

func (s *CalculatorTestSuite) TestAttackFormulaIsStable() {
	item := builders.Weapon("w", "Longsword")
	weapon(item).AttackBonus = "2"
	actor := builders.NewActorBuilder().WithAbility("str", 16).WithItems(item).Build()

	first := s.calc.Prepare(item, actor)
	second := s.calc.Prepare(item, actor)
	s.Equal(first.Labels.ToHit, second.Labels.ToHit)
	s.Equal("+ 7", second.Labels.ToHit)

	simplified, err := s.calc.evaluator.Simplify(first.AttackFormula)
	s.Require().NoError(err)
	s.Equal(first.AttackFormula, simplified)
}

func (s *CalculatorTestSuite) TestAttackFormulaUnowned() {
	item := builders.Weapon("w", "Longsword")
	bare := s.calc.AttackFormula(item, nil)
	s.Empty(bare.Formula)
	s.Equal("0", bare.Modifier)
	s.Equal("+ 0", bare.ToHit)

	weapon(item).AttackBonus = "2 + 1"
	attack := s.calc.AttackFormula(item, nil)
	s.Equal([]string{"2 + 1"}, attack.Parts)
	s.Equal("3", attack.Modifier)
	s.Equal("+ 3", attack.ToHit)
}

func (s *CalculatorTestSuite) TestSaveDC() {
	actor := builders.NewActorBuilder().
		WithAbility("wis", 16).
		WithAbility("con", 14).
		WithSpellcasting("wis").
		Build()

	testCases := []struct {
		name    string
		scaling string
		dc      *int
		actor   *entities.Actor
		expect  *int
	}{
		{name: "flat", scaling: "flat", dc: builders.Ptr(15), actor: actor, expect: builders.Ptr(15)},
		{name: "empty scaling is flat", dc: builders.Ptr(12), actor: actor, expect: builders.Ptr(12)},
		{name: "flat without owner", scaling: "flat", dc: builders.Ptr(15), expect: builders.Ptr(15)},
		{name: "spell", scaling: "spell", actor: actor, expect: builders.Ptr(13)},
		{name: "spell without owner", scaling: "spell"},
		{name: "ability", scaling: "con", actor: actor, expect: builders.Ptr(12)},
		{name: "unknown ability", scaling: "luck", actor: actor},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			item := builders.Spell("s", "Sacred Flame", 0)
			item.System.(*entities.SpellData).ActionType = "save"
			item.System.(*entities.SpellData).Save = entities.Save{Ability: "dex", DC: tc.dc, Scaling: tc.scaling}

			s.Equal(tc.expect, s.calc.SaveDC(item, tc.actor))
		})
	}
}

func (s *CalculatorTestSuite) TestSaveLabel() {
	item := builders.Spell("s", "Sacred Flame", 0)
	item.System.(*entities.SpellData).ActionType = "save"
	item.System.(*entities.SpellData).Save = entities.Save{Ability: "dex", Scaling: "spell"}
	actor := builders.NewActorBuilder().WithAbility("wis", 16).WithSpellcasting("wis").WithItems(item).Build()

	d := s.calc.Prepare(item, actor)
	s.Equal("DC 13 Dexterity", d.Labels.Save)
}

func (s *CalculatorTestSuite) TestCriticalThreshold() {
	bow := func() *entities.Item {
		item := builders.Weapon("w", "Longbow")
		weapon(item).WeaponType = "martialR"
		weapon(item).ActionType = "rwak"
		weapon(item).Consume = entities.Consume{Type: "ammo", Target: "arrows", Amount: 1}
		return item
	}

	s.Run("smallest of item, owner and ammunition", func() {
		item := bow()
		weapon(item).Critical.Threshold = builders.Ptr(19)
		arrows := builders.Ammunition("arrows", "Arrows", 10)
		arrows.System.(*entities.ConsumableData).Critical.Threshold = builders.Ptr(20)
		actor := builders.NewActorBuilder().WithWeaponCriticalThreshold(18).WithItems(item, arrows).Build()

		s.Equal(builders.Ptr(18), s.calc.CriticalThreshold(item, actor))
	})

	s.Run("ammunition lowers threshold", func() {
		item := bow()
		arrows := builders.Ammunition("arrows", "Arrows", 10)
		arrows.System.(*entities.ConsumableData).Critical.Threshold = builders.Ptr(19)
		actor := builders.NewActorBuilder().WithItems(item, arrows).Build()

		s.Equal(builders.Ptr(19), s.calc.CriticalThreshold(item, actor))
	})

	s.Run("default threshold", func() {
		item := builders.Weapon("w", "Longsword")
		actor := builders.NewActorBuilder().WithItems(item).Build()

		s.Equal(builders.Ptr(20), s.calc.CriticalThreshold(item, actor))
	})

	s.Run("spell uses spell flag", func() {
		item := builders.Spell("s", "Fire Bolt", 0)
		item.System.(*entities.SpellData).ActionType = "rsak"
		actor := builders.NewActorBuilder().
			WithWeaponCriticalThreshold(17).
			WithSpellCriticalThreshold(19).
			WithItems(item).
			Build()

		s.Equal(builders.Ptr(19), s.calc.CriticalThreshold(item, actor))
	})

	s.Run("ammunition applies to any item that fires it", func() {
		feat := builders.Feat("f", "Sling Shot")
		sys := feat.System.(*entities.FeatData)
		sys.ActionType = "rwak"
		sys.Consume = entities.Consume{Type: "ammo", Target: "bullets", Amount: 1}
		bullets := builders.Ammunition("bullets", "Sling Bullets", 10)
		bullets.System.(*entities.ConsumableData).Critical.Threshold = builders.Ptr(18)
		actor := builders.NewActorBuilder().WithWeaponCriticalThreshold(19).WithItems(feat, bullets).Build()

		s.Equal(builders.Ptr(18), s.calc.CriticalThreshold(feat, actor))
	})

	s.Run("unowned or no attack", func() {
		s.Nil(s.calc.CriticalThreshold(builders.Weapon("w", "Longsword"), nil))

		feat := builders.Feat("f", "Second Wind")
		actor := builders.NewActorBuilder().WithItems(feat).Build()
		s.Nil(s.calc.CriticalThreshold(feat, actor))
	})
}

func (s *CalculatorTestSuite) TestUsesFormula() {
	testCases := []struct {
		name    string
		max     entities.Formula
		expect  *int
		warning entities.WarningKind
	}{
		{name: "plain number", max: "3", expect: builders.Ptr(3)},
		{name: "ability modifier", max: "@abilities.cha.mod", expect: builders.Ptr(2)},
		{name: "proficiency", max: "@prof * 2", expect: builders.Ptr(4)},
		{
			name:    "missing reference counts as zero",
			max:     "@resources.ki.max + 1",
			expect:  builders.Ptr(1),
			warning: entities.WarningMissingReference,
		},
		{name: "unparseable", max: "floor(", warning: entities.WarningFormulaError},
		{name: "dice are rejected", max: "1d4", warning: entities.WarningFormulaError},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			feat := builders.Feat("f", "Bardic Inspiration")
			feat.System.(*entities.FeatData).Uses = entities.Uses{Max: tc.max, Per: "lr"}
			actor := builders.NewActorBuilder().WithAbility("cha", 14).WithItems(feat).Build()

			d := s.calc.Prepare(feat, actor)
			s.Equal(tc.expect, d.UsesMax)

			if tc.warning == "" {
				s.Empty(actor.Warnings)
				return
			}
			s.Require().Len(actor.Warnings, 1)
			s.Equal(tc.warning, actor.Warnings[0].Kind)
			s.Equal("f", actor.Warnings[0].Link)
		})
	}
}

func (s *CalculatorTestSuite) TestUnownedSkipsFormulas() {
	feat := builders.Feat("f", "Bardic Inspiration")
	feat.System.(*entities.FeatData).Uses = entities.Uses{Max: "@abilities.cha.mod", Per: "lr"}
	feat.System.(*entities.FeatData).Duration = entities.Duration{Value: "10", Units: "minute"}

	d := s.calc.Prepare(feat, nil)
	s.Nil(d.UsesMax)
	s.Equal(builders.Ptr(10), d.DurationValue)
	s.Equal("10 Minute", d.Labels.Duration)
	s.Empty(d.ClassLink)
}

func (s *CalculatorTestSuite) TestDamageLabels() {
	item := builders.Weapon("w", "Flame Tongue")
	weapon(item).Damage.Parts = append(weapon(item).Damage.Parts, entities.DamagePart{Formula: "2d6", Type: "fire"})
	actor := builders.NewActorBuilder().WithAbility("str", 16).WithItems(item).Build()

	d := s.calc.Prepare(item, actor)
	s.Require().Len(d.DerivedDamage, 2)
	s.Equal("1d8 + 3", d.DerivedDamage[0].Formula)
	s.Equal("1d8 + 3 Slashing", d.DerivedDamage[0].Label)
	s.Equal("2d6 Fire", d.DerivedDamage[1].Label)
	s.Equal("1d8 + 3 + 2d6", d.Labels.Damage)
	s.Equal("Slashing, Fire", d.Labels.DamageType)

	unowned := s.calc.DamageLabels(item, nil)
	s.Equal("1d8 + @mod", unowned[0].Formula)
}

func (s *CalculatorTestSuite) TestActivationLabels() {
	spell := builders.Spell("s", "Fireball", 3)
	sys := spell.System.(*entities.SpellData)
	sys.Range = entities.Range{Value: builders.Ptr(150.0), Units: "ft"}
	sys.Target = entities.Target{Value: 20, Units: "ft", Type: "sphere"}
	sys.Recharge = entities.Recharge{Value: 5}

	d := s.calc.Prepare(spell, nil)
	s.Equal("1 Action", d.Labels.Activation)
	s.Equal("150 Feet", d.Labels.Range)
	s.Equal("20 Feet Sphere", d.Labels.Target)
	s.Equal("Recharge [5-6]", d.Labels.Recharge)
	s.Equal("Evocation", d.Labels.School)
	s.Equal("3rd Level", d.Labels.Level)
}

func (s *CalculatorTestSuite) TestClassLink() {
	class := builders.Class("c", "wizard", "d6", 3, 0)
	sub := builders.Subclass("sc", "evoker", "wizard")
	actor := builders.NewActorBuilder().WithItems(class, sub).Build()

	s.Equal("sc", s.calc.Prepare(class, actor).ClassLink)
	s.Equal("c", s.calc.Prepare(sub, actor).ClassLink)
}

func (s *CalculatorTestSuite) TestEvaluatorFailures() {
	ctrl := gomock.NewController(s.T())
	ev := formulamock.NewMockEvaluator(ctrl)
	calc, err := New(&Config{Rules: config.Defaults(), Evaluator: ev})
	s.Require().NoError(err)

	s.Run("uses formula error becomes a warning", func() {
		feat := builders.Feat("ki", "Ki")
		actor := builders.NewActorBuilder().WithItems(feat).Build()
		ev.EXPECT().Evaluate("@prof * 2", gomock.Any()).Return(nil, errors.InvalidArgument("bad formula"))

		s.Nil(calc.resolveFormula("@prof * 2", "uses", feat, actor, formula.Data{}))
		s.Require().Len(actor.Warnings, 1)
		s.Equal(entities.WarningFormulaError, actor.Warnings[0].Kind)
		s.Equal("ki", actor.Warnings[0].Link)
		s.Contains(actor.Warnings[0].Message, "bad formula")
	})

	s.Run("attack bonus that fails to simplify is kept as written", func() {
		item := builders.Weapon("w", "Longsword")
		weapon(item).AttackBonus = "1d4"
		ev.EXPECT().Simplify("1d4").Return("", errors.InvalidArgument("cannot simplify"))

		attack := calc.AttackFormula(item, nil)
		s.Equal("1d4", attack.Formula)
		s.Equal("+ 1d4", attack.ToHit)
	})
}
