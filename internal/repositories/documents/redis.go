package documents

import (
	"context"
	stderrors "errors"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-items/internal/redis"
)

// Keys share the actor id as hash tag so one transaction can watch them all
// on a cluster.
const (
	actorKeyPrefix = "actor:{"
	itemsSuffix    = "}:items"
	itemSuffix     = "}:item:"

	defaultMaxAttempts = 3
)

func actorKey(actorID string) string {
	return actorKeyPrefix + actorID + "}"
}

func itemListKey(actorID string) string {
	return actorKeyPrefix + actorID + itemsSuffix
}

func itemKey(actorID, itemID string) string {
	return actorKeyPrefix + actorID + itemSuffix + itemID
}

type redisRepository struct {
	client      redisclient.Client
	maxAttempts int
}

// RedisConfig contains configuration for the Redis document repository.
type RedisConfig struct {
	Client redisclient.Client

	// MaxAttempts bounds retries when a watched key changes mid transaction
	MaxAttempts int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed document repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	return &redisRepository{
		client:      cfg.Client,
		maxAttempts: attempts,
	}, nil
}

func (r *redisRepository) GetActor(ctx context.Context, input GetActorInput) (*GetActorOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	data, err := r.client.Get(ctx, actorKey(input.ID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get actor")
	}

	actor, err := decodeActor(data)
	if err != nil {
		return nil, err
	}

	ids, err := r.client.LRange(ctx, itemListKey(input.ID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items")
	}
	if len(ids) == 0 {
		return &GetActorOutput{Actor: actor}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(input.ID, id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get items")
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// Listed but missing: skip it rather than fail the whole actor
			slog.WarnContext(ctx, "Item listed but not stored",
				"actor_id", input.ID,
				"item_id", ids[i])
			continue
		}
		item, err := decodeItem([]byte(s))
		if err != nil {
			return nil, err
		}
		actor.Items = append(actor.Items, item)
	}

	return &GetActorOutput{Actor: actor}, nil
}

func (r *redisRepository) PutActor(ctx context.Context, input PutActorInput) (*PutActorOutput, error) {
	if err := validateActor(input.Actor); err != nil {
		return nil, err
	}

	actor := input.Actor
	data, err := encodeActor(actor)
	if err != nil {
		return nil, err
	}

	items := make(map[string][]byte, len(actor.Items))
	ids := make([]any, 0, len(actor.Items))
	for _, item := range actor.Items {
		doc, err := encodeItem(item)
		if err != nil {
			return nil, err
		}
		items[item.ID] = doc
		ids = append(ids, item.ID)
	}

	// Drop items the new version no longer has
	previous, err := r.client.LRange(ctx, itemListKey(actor.ID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, actorKey(actor.ID), data, 0)
	for _, id := range previous {
		if _, ok := items[id]; !ok {
			pipe.Del(ctx, itemKey(actor.ID, id))
		}
	}
	pipe.Del(ctx, itemListKey(actor.ID))
	if len(ids) > 0 {
		pipe.RPush(ctx, itemListKey(actor.ID), ids...)
	}
	for id, doc := range items {
		pipe.Set(ctx, itemKey(actor.ID, id), doc, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store actor")
	}

	return &PutActorOutput{Actor: actor}, nil
}

func (r *redisRepository) PutItem(ctx context.Context, input PutItemInput) (*PutItemOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, actorKey(input.ActorID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("actor with ID %s not found", input.ActorID)
	}

	doc, err := encodeItem(input.Item)
	if err != nil {
		return nil, err
	}

	key := itemKey(input.ActorID, input.Item.ID)
	known, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, doc, 0)
	if known == 0 {
		pipe.RPush(ctx, itemListKey(input.ActorID), input.Item.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store item")
	}

	return &PutItemOutput{Item: input.Item}, nil
}

// ApplyUsage watches every document the consumption touches, patches them
// and writes them back in one MULTI/EXEC. A conflicting write retries the
// whole read and patch.
func (r *redisRepository) ApplyUsage(ctx context.Context, input ApplyUsageInput) (*ApplyUsageOutput, error) {
	c := input.Consumption
	if err := validateConsumption(c); err != nil {
		return nil, err
	}

	keys := []string{actorKey(c.ActorID), itemKey(c.ActorID, c.ItemID)}
	for _, ru := range c.ResourceUpdates {
		keys = append(keys, itemKey(c.ActorID, ru.ID))
	}

	txf := func(tx *redis.Tx) error {
		values, err := tx.MGet(ctx, keys...).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to read documents")
		}
		for i, v := range values {
			if _, ok := v.(string); !ok {
				return errors.NotFoundf("document %s not found", keys[i])
			}
		}

		actorDoc, err := applyUpdates([]byte(values[0].(string)), c.ActorUpdates)
		if err != nil {
			return err
		}
		itemDoc, err := applyUpdates([]byte(values[1].(string)), c.ItemUpdates)
		if err != nil {
			return err
		}
		siblings := make([][]byte, len(c.ResourceUpdates))
		for i, ru := range c.ResourceUpdates {
			siblings[i], err = applyUpdates([]byte(values[i+2].(string)), ru.Updates)
			if err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keys[0], actorDoc, 0)
			if c.DeleteItem {
				pipe.Del(ctx, keys[1])
				pipe.LRem(ctx, itemListKey(c.ActorID), 0, c.ItemID)
			} else {
				pipe.Set(ctx, keys[1], itemDoc, 0)
			}
			for i, doc := range siblings {
				pipe.Set(ctx, keys[i+2], doc, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
		if err == nil {
			return &ApplyUsageOutput{DeletedItem: c.DeleteItem}, nil
		}
		if !stderrors.Is(err, redis.TxFailedErr) {
			return nil, errors.Wrapf(err, "failed to apply usage of %s", c.ItemID)
		}
		slog.DebugContext(ctx, "Usage transaction conflicted, retrying",
			"actor_id", c.ActorID,
			"item_id", c.ItemID,
			"attempt", attempt)
	}

	return nil, errors.Abortedf("usage of %s conflicted with concurrent updates", c.ItemID).
		WithMeta("actor_id", c.ActorID)
}

var _ Repository = (*redisRepository)(nil)
