package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"addy/internal/core/domain"
	"addy/internal/core/port"
)

var (
	seedAdjectives = []string{"cheap", "organic", "wireless", "vintage", "luxury", "used", "local", "fast"}
	seedNouns      = []string{"sneakers", "coffee", "headphones", "bicycles", "watches", "flights", "pizza", "laptops"}
)

// Seed creates n demo campaigns spread across all zones and allocates one
// keyword slot for each. Campaigns are moved to Live. Prices are drawn
// between the bid floor and the chosen tier's cap.
func Seed(ctx context.Context, uc port.RegistryUseCase, n int, r *rand.Rand) error {
	stats, err := uc.Stats(ctx)
	if err != nil {
		return err
	}
	var tiers []domain.Tier
	for _, tier := range domain.Tiers() {
		if stats.TierCaps[tier] >= stats.BidFloorNanos {
			tiers = append(tiers, tier)
		}
	}
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no tier admits bid floor %d", domain.ErrInvalidArgument, stats.BidFloorNanos)
	}

	zones := domain.Zones()
	for i := 0; i < n; i++ {
		owner := fmt.Sprintf("advertiser-%d", r.Intn(100)+1)
		cid, err := uc.CreateCampaign(ctx, owner, zones[i%len(zones)])
		if err != nil {
			return fmt.Errorf("seed campaign %d: %w", i+1, err)
		}

		tier := tiers[r.Intn(len(tiers))]
		price := stats.BidFloorNanos
		if span := stats.TierCaps[tier] - stats.BidFloorNanos; span > 0 {
			price += uint64(r.Int63n(int64(span) + 1))
		}
		keyword := fmt.Sprintf("%s %s %d",
			seedAdjectives[r.Intn(len(seedAdjectives))], seedNouns[r.Intn(len(seedNouns))], cid)
		_, err = uc.AllocateKeywordSlot(ctx, port.SlotRequest{
			Keyword:    keyword,
			CampaignID: cid,
			Tier:       tier,
			PriceNanos: price,
		})
		if err != nil {
			return fmt.Errorf("seed slot for campaign %d: %w", cid, err)
		}
		if err = uc.TransitionCampaignPhase(ctx, cid, domain.PhaseLive); err != nil {
			return fmt.Errorf("seed activation of campaign %d: %w", cid, err)
		}
	}
	return nil
}
