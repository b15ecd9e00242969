package social

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Repository exposes the swipe-graph persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	FindPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error)
	BlockExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	CreateBlock(ctx context.Context, block *models.Block) error
	FindSwipe(ctx context.Context, swiperID, swipedID uuid.UUID) (*models.Swipe, error)
	CreateSwipe(ctx context.Context, swipe *models.Swipe) error
	CreateMatch(ctx context.Context, match *models.Match) error
	UpdateMatch(ctx context.Context, match *models.Match) error
	FindMatchBetween(ctx context.Context, a, b uuid.UUID) (*models.Match, error)
	ListActiveMatchesForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Match, error)
	CreateConversation(ctx context.Context, conv *models.SocialConversation) error
	DecrementDailySwipe(ctx context.Context, userID uuid.UUID) (bool, error)
	DecrementFreeSwipes(ctx context.Context, userID uuid.UUID) (bool, error)
	FindOrCreatePreference(ctx context.Context, userID uuid.UUID, defaultDailyLimit int) (*models.UserPreference, error)
	UpdatePreference(ctx context.Context, pref *models.UserPreference) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a social repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) FindPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) BlockExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateBlock(ctx context.Context, block *models.Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *repository) FindSwipe(ctx context.Context, swiperID, swipedID uuid.UUID) (*models.Swipe, error) {
	var swipe models.Swipe
	err := r.db.WithContext(ctx).
		Where("swiper_id = ? AND swiped_id = ?", swiperID, swipedID).
		First(&swipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *repository) CreateSwipe(ctx context.Context, swipe *models.Swipe) error {
	return r.db.WithContext(ctx).Create(swipe).Error
}

func (r *repository) CreateMatch(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

func (r *repository) UpdateMatch(ctx context.Context, match *models.Match) error {
	return r.db.WithContext(ctx).Save(match).Error
}

func (r *repository) FindMatchBetween(ctx context.Context, a, b uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *repository) ListActiveMatchesForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Match, error) {
	var matches []models.Match
	query := r.db.WithContext(ctx).
		Where("status = ? AND (user1_id = ? OR user2_id = ?)", enums.MatchStatusActive, userID, userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *repository) CreateConversation(ctx context.Context, conv *models.SocialConversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

// DecrementDailySwipe spends one unit of the subscription pool with a
// conditional UPDATE so concurrent swipes cannot overdraw it.
func (r *repository) DecrementDailySwipe(ctx context.Context, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND daily_swipe_remaining > 0", userID).
		UpdateColumn("daily_swipe_remaining", gorm.Expr("daily_swipe_remaining - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementFreeSwipes spends one unit of the free pool, same contract as
// DecrementDailySwipe.
func (r *repository) DecrementFreeSwipes(ctx context.Context, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND free_swipes_remaining > 0", userID).
		UpdateColumn("free_swipes_remaining", gorm.Expr("free_swipes_remaining - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindOrCreatePreference(ctx context.Context, userID uuid.UUID, defaultDailyLimit int) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pref = models.UserPreference{
		UserID:          userID,
		ConnectionTypes: pq.StringArray{string(enums.ConnectionTypeFriends)},
		DailySwipeLimit: defaultDailyLimit,
	}
	if err := r.db.WithContext(ctx).Create(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *repository) UpdatePreference(ctx context.Context, pref *models.UserPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
