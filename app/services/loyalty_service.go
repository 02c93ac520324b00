package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"gorm.io/gorm"
)

// One point is worth €0.01.
const PointValue = 0.01

// Tier thresholds in currency units. A balance exactly at a threshold maps
// to the higher tier.
const (
	TierTwoThreshold   = 200.0
	TierThreeThreshold = 500.0
)

// DailyBonusPoints is awarded once per UTC calendar day per user.
const DailyBonusPoints = 10

// ErrBonusAlreadyClaimed is returned when today's bonus was already taken.
var ErrBonusAlreadyClaimed = errors.New("loyalty: daily bonus already claimed today")

// TierInfo is the derived loyalty standing, recomputed on every read.
type TierInfo struct {
	Tier    int     `json:"tier"`
	Name    string  `json:"name"`
	Points  int64   `json:"points"`
	Balance float64 `json:"balance"`
}

// DefaultTier is what flawed lookups degrade to: the frontend renders a
// tier badge on every page and must never see an error here.
func DefaultTier() TierInfo {
	return TierInfo{Tier: 1, Name: tierName(1)}
}

func tierName(tier int) string {
	switch tier {
	case 3:
		return "gold"
	case 2:
		return "silver"
	default:
		return "bronze"
	}
}

// TierForBalance maps a currency balance onto the threshold ladder.
func TierForBalance(balance float64) int {
	switch {
	case balance >= TierThreeThreshold:
		return 3
	case balance >= TierTwoThreshold:
		return 2
	default:
		return 1
	}
}

// LoyaltyService derives tiers from the points ledger and guards the daily
// bonus.
type LoyaltyService struct {
	repo *repositories.LoyaltyRepository
	now  func() time.Time
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{
		repo: repositories.NewLoyaltyRepository(db),
		now:  time.Now,
	}
}

// Ledger returns the raw ledger rows plus the summed balance.
func (s *LoyaltyService) Ledger(userID uint) ([]models.LoyaltyPoint, TierInfo, error) {
	rows, err := s.repo.Ledger(userID)
	if err != nil {
		return nil, DefaultTier(), err
	}
	info, err := s.Tier(userID)
	return rows, info, err
}

// Tier recomputes the user's standing from the full ledger. Nothing is
// persisted; the ledger is the only source of truth.
func (s *LoyaltyService) Tier(userID uint) (TierInfo, error) {
	points, err := s.repo.Sum(userID)
	if err != nil {
		return DefaultTier(), err
	}

	balance := float64(points) * PointValue
	tier := TierForBalance(balance)
	return TierInfo{
		Tier:    tier,
		Name:    tierName(tier),
		Points:  points,
		Balance: balance,
	}, nil
}

// Award appends a ledger row.
func (s *LoyaltyService) Award(userID uint, points int, bonusType, description string) error {
	if bonusType == "" {
		bonusType = models.BonusManual
	}
	return s.repo.Award(&models.LoyaltyPoint{
		UserID:      userID,
		Points:      points,
		BonusType:   bonusType,
		Description: description,
	})
}

// DailyBonus awards the daily points at most once per UTC calendar date.
// The second claim on the same date returns ErrBonusAlreadyClaimed and
// writes nothing.
func (s *LoyaltyService) DailyBonus(userID uint) (int, error) {
	today := s.now().UTC()

	claimed, err := s.repo.HasBonusOn(userID, models.BonusDaily, today)
	if err != nil {
		return 0, fmt.Errorf("loyalty: check daily bonus: %w", err)
	}
	if claimed {
		return 0, ErrBonusAlreadyClaimed
	}

	err = s.repo.Award(&models.LoyaltyPoint{
		UserID:      userID,
		Points:      DailyBonusPoints,
		BonusType:   models.BonusDaily,
		Description: "Daily visit bonus",
	})
	if err != nil {
		return 0, fmt.Errorf("loyalty: award daily bonus: %w", err)
	}
	return DailyBonusPoints, nil
}
