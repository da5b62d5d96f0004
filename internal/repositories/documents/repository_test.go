package documents

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-items/internal/testutils"
	"github.com/KirkDiggler/rpg-items/internal/testutils/builders"
)

// RepositoryTestSuite runs the same behavior against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) (Repository, func())

	repo    Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) (Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := NewRedis(&RedisConfig{Client: client})
			require.NoError(t, err)
			return repo, cleanup
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) (Repository, func()) {
			repo, err := OpenSQLite(&SQLiteConfig{
				Path:  filepath.Join(t.TempDir(), "items.db"),
				Clock: clock.Fixed{At: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			})
			require.NoError(t, err)
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo, s.cleanup = s.newRepo(s.T())
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RepositoryTestSuite) storeActor() *entities.Actor {
	spell := builders.Spell("magic-missile", "Magic Missile", 1)
	bow := builders.Weapon("bow", "Longbow")
	arrows := builders.Ammunition("arrows", "Arrows", 20)
	potion := builders.Consumable("potion", "Potion of Healing", "potion", 1)
	potion.System.(*entities.ConsumableData).Uses = entities.Uses{Value: 1, Max: "1", Per: "charges", AutoDestroy: true}

	actor := builders.NewActorBuilder().
		WithID("hero").
		WithSpellSlots("spell1", 2, 2).
		WithItems(spell, bow, arrows, potion).
		Build()

	_, err := s.repo.PutActor(s.ctx, PutActorInput{Actor: actor})
	s.Require().NoError(err)
	return actor
}

func (s *RepositoryTestSuite) getActor(id string) *entities.Actor {
	out, err := s.repo.GetActor(s.ctx, GetActorInput{ID: id})
	s.Require().NoError(err)
	return out.Actor
}

func (s *RepositoryTestSuite) TestPutAndGetActor() {
	s.storeActor()

	actor := s.getActor("hero")
	s.Equal("Test Hero", actor.Name)
	s.Equal(2, actor.System.Spells["spell1"].Value)
	s.Require().Len(actor.Items, 4)

	ids := make([]string, len(actor.Items))
	for i, item := range actor.Items {
		ids[i] = item.ID
	}
	s.Equal([]string{"magic-missile", "bow", "arrows", "potion"}, ids)

	bow, ok := actor.Items[1].System.(*entities.WeaponData)
	s.Require().True(ok)
	s.Equal("1d8 + @mod", bow.Damage.Parts[0].Formula)
	s.Equal("slashing", bow.Damage.Parts[0].Type)
}

func (s *RepositoryTestSuite) TestGetActorErrors() {
	_, err := s.repo.GetActor(s.ctx, GetActorInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.GetActor(s.ctx, GetActorInput{ID: "nobody"})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestPutActorValidation() {
	_, err := s.repo.PutActor(s.ctx, PutActorInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.PutActor(s.ctx, PutActorInput{Actor: &entities.Actor{ID: "a", Items: []*entities.Item{{}}}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestPutRejectsInvalidItems() {
	badClass := builders.Class("fighter", "fighter", "banana", 0, -3)
	badBow := builders.Weapon("bow", "Longbow")
	bow := badBow.System.(*entities.WeaponData)
	bow.Recharge.Value = 9
	bow.Consume = entities.Consume{Type: "bogus", Target: "arrows"}

	testCases := []struct {
		name   string
		item   *entities.Item
		fields []string
	}{
		{
			name:   "class levels and hit dice",
			item:   badClass,
			fields: []string{"system.levels", "system.hitDice", "system.hitDiceUsed"},
		},
		{
			name:   "weapon recharge and consume type",
			item:   badBow,
			fields: []string{"system.recharge.value", "system.consume.type"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			actor := builders.NewActorBuilder().WithID("hero").WithItems(tc.item).Build()

			_, err := s.repo.PutActor(s.ctx, PutActorInput{Actor: actor})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			for _, field := range tc.fields {
				s.Contains(err.Error(), field)
			}

			_, err = s.repo.GetActor(s.ctx, GetActorInput{ID: "hero"})
			s.True(errors.IsNotFound(err), "nothing is stored")
		})
	}

	s.Run("put item", func() {
		s.storeActor()

		_, err := s.repo.PutItem(s.ctx, PutItemInput{ActorID: "hero", Item: badClass})
		s.True(errors.IsInvalidArgument(err))
		s.Equal("fighter", errors.GetMeta(err)["item_id"])
		s.Nil(s.getActor("hero").ItemByID("fighter"))
	})
}

func (s *RepositoryTestSuite) TestPutActorReplacesItems() {
	actor := s.storeActor()
	actor.Items = actor.Items[:1]

	_, err := s.repo.PutActor(s.ctx, PutActorInput{Actor: actor})
	s.Require().NoError(err)

	stored := s.getActor("hero")
	s.Require().Len(stored.Items, 1)
	s.Equal("magic-missile", stored.Items[0].ID)
}

func (s *RepositoryTestSuite) TestPutItem() {
	s.storeActor()

	_, err := s.repo.PutItem(s.ctx, PutItemInput{ActorID: "hero", Item: builders.Feat("second-wind", "Second Wind")})
	s.Require().NoError(err)

	renamed := builders.Weapon("bow", "Longbow +1")
	_, err = s.repo.PutItem(s.ctx, PutItemInput{ActorID: "hero", Item: renamed})
	s.Require().NoError(err)

	actor := s.getActor("hero")
	s.Require().Len(actor.Items, 5)
	s.Equal("Longbow +1", actor.Items[1].Name)
	s.Equal("second-wind", actor.Items[4].ID)

	_, err = s.repo.PutItem(s.ctx, PutItemInput{ActorID: "nobody", Item: renamed})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.PutItem(s.ctx, PutItemInput{ActorID: "hero"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestApplyUsage() {
	s.storeActor()

	out, err := s.repo.ApplyUsage(s.ctx, ApplyUsageInput{Consumption: &usage.Consumption{
		ActorID:      "hero",
		ItemID:       "bow",
		ActorUpdates: usage.Updates{"system.spells.spell1.value": 1},
		ItemUpdates:  usage.Updates{"system.recharge.charged": false},
		ResourceUpdates: []usage.ResourceUpdate{
			{ID: "arrows", Updates: usage.Updates{"system.quantity": 19}},
		},
	}})
	s.Require().NoError(err)
	s.False(out.DeletedItem)

	actor := s.getActor("hero")
	s.Equal(1, actor.System.Spells["spell1"].Value)
	s.Equal(2, actor.System.Spells["spell1"].Max, "untouched fields survive the patch")
	s.Equal(19, actor.ItemByID("arrows").Quantity())
	s.Len(actor.Items, 4)
}

func (s *RepositoryTestSuite) TestApplyUsageDeletesItem() {
	s.storeActor()

	out, err := s.repo.ApplyUsage(s.ctx, ApplyUsageInput{Consumption: &usage.Consumption{
		ActorID:      "hero",
		ItemID:       "potion",
		ActorUpdates: usage.Updates{},
		ItemUpdates:  usage.Updates{"system.quantity": 0, "system.uses.value": 1},
		DeleteItem:   true,
	}})
	s.Require().NoError(err)
	s.True(out.DeletedItem)

	actor := s.getActor("hero")
	s.Nil(actor.ItemByID("potion"))
	s.Len(actor.Items, 3)
}

func (s *RepositoryTestSuite) TestApplyUsageIsAllOrNothing() {
	s.storeActor()

	_, err := s.repo.ApplyUsage(s.ctx, ApplyUsageInput{Consumption: &usage.Consumption{
		ActorID:      "hero",
		ItemID:       "bow",
		ActorUpdates: usage.Updates{"system.spells.spell1.value": 0},
		ResourceUpdates: []usage.ResourceUpdate{
			{ID: "arrows", Updates: usage.Updates{"system.quantity": 19}},
			{ID: "bolts", Updates: usage.Updates{"system.quantity": 4}},
		},
	}})
	s.True(errors.IsNotFound(err))

	actor := s.getActor("hero")
	s.Equal(2, actor.System.Spells["spell1"].Value)
	s.Equal(20, actor.ItemByID("arrows").Quantity())
}

func (s *RepositoryTestSuite) TestApplyUsageValidation() {
	_, err := s.repo.ApplyUsage(s.ctx, ApplyUsageInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.ApplyUsage(s.ctx, ApplyUsageInput{Consumption: &usage.Consumption{ActorID: "hero"}})
	s.True(errors.IsInvalidArgument(err))
}

func TestApplyUpdates(t *testing.T) {
	doc := []byte(`{"system":{"uses":{"value":2,"max":"3"},"quantity":1}}`)

	out, err := applyUpdates(doc, usage.Updates{
		"system.uses.value":       1,
		"system.recharge.charged": false,
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"system":{"uses":{"value":1,"max":"3"},"quantity":1,"recharge":{"charged":false}}}`, string(out))
}
