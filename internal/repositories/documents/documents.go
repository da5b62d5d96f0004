package documents

import (
	"encoding/json"

	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
)

const (
	// Error messages
	errActorNil       = "actor cannot be nil"
	errActorIDEmpty   = "actor ID cannot be empty"
	errItemNil        = "item cannot be nil"
	errItemIDEmpty    = "item ID cannot be empty"
	errConsumptionNil = "consumption cannot be nil"
)

// applyUpdates sets every dotted path of updates on a JSON document
func applyUpdates(doc []byte, updates usage.Updates) ([]byte, error) {
	var err error
	for path, value := range updates {
		doc, err = sjson.SetBytes(doc, path, value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to set %s", path)
		}
	}
	return doc, nil
}

// encodeActor encodes an actor without its items
func encodeActor(actor *entities.Actor) ([]byte, error) {
	doc := *actor
	doc.Items = nil
	doc.Warnings = nil
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal actor %s", actor.ID)
	}
	return data, nil
}

func decodeActor(data []byte) (*entities.Actor, error) {
	var actor entities.Actor
	if err := json.Unmarshal(data, &actor); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal actor")
	}
	return &actor, nil
}

func encodeItem(item *entities.Item) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item %s", item.ID)
	}
	return data, nil
}

func decodeItem(data []byte) (*entities.Item, error) {
	var item entities.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal item")
	}
	return &item, nil
}

func validateActor(actor *entities.Actor) error {
	if actor == nil {
		return errors.InvalidArgument(errActorNil)
	}
	if actor.ID == "" {
		return errors.InvalidArgument(errActorIDEmpty)
	}
	for _, item := range actor.Items {
		if err := validateItem(item); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(item *entities.Item) error {
	if item == nil {
		return errors.InvalidArgument(errItemNil)
	}
	if item.ID == "" {
		return errors.InvalidArgument(errItemIDEmpty)
	}
	if err := item.Validate(); err != nil {
		return errors.Wrapf(err, "invalid item %s", item.ID).WithMeta("item_id", item.ID)
	}
	return nil
}

func validateConsumption(c *usage.Consumption) error {
	if c == nil {
		return errors.InvalidArgument(errConsumptionNil)
	}
	if c.ActorID == "" {
		return errors.InvalidArgument(errActorIDEmpty)
	}
	if c.ItemID == "" {
		return errors.InvalidArgument(errItemIDEmpty)
	}
	return nil
}
