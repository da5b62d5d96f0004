// Package engine is the entry point to the item rules: preparing derived
// data, resolving what a use consumes and building damage and attack rolls.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-items/internal/engine Engine

import (
	"context"
)

// Engine applies the item rules. It never modifies the actor's stored data;
// everything a use changes comes back as update buckets.
type Engine interface {
	// Preparation
	PrepareActor(ctx context.Context, input *PrepareActorInput) (*PrepareActorOutput, error)
	PrepareItem(ctx context.Context, input *PrepareItemInput) (*PrepareItemOutput, error)

	// Usage
	UsageConfig(ctx context.Context, input *UsageConfigInput) (*UsageConfigOutput, error)
	ResolveUsage(ctx context.Context, input *ResolveUsageInput) (*ResolveUsageOutput, error)
	ResolveAmmunition(ctx context.Context, input *ResolveAmmunitionInput) (*ResolveUsageOutput, error)

	// Rolls
	AttackRoll(ctx context.Context, input *AttackRollInput) (*AttackRollOutput, error)
	DamageParts(ctx context.Context, input *DamagePartsInput) (*DamagePartsOutput, error)
}
