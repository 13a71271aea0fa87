package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
	rulesRepo "github.com/m04kA/barber-booking/internal/infra/storage/rules"
	"github.com/m04kA/barber-booking/internal/service/rules/models"
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// Service сервис правил бронирования барбершопов
// Действующие правила = базовые правила сервиса + переопределения барбершопа из БД
type Service struct {
	rulesRepo RulesRepository
	cache     RulesCache
	base      domain.BookingRules
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил
// cache может быть nil, тогда переопределения всегда читаются из БД
func NewService(
	rulesRepo RulesRepository,
	cache RulesCache,
	base domain.BookingRules,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo: rulesRepo,
		cache:     cache,
		base:      base,
		metrics:   metrics,
		logger:    logger,
	}
}

// Base возвращает базовые правила сервиса
func (s *Service) Base() domain.BookingRules {
	return s.base
}

// Resolve возвращает действующие правила барбершопа
func (s *Service) Resolve(ctx context.Context, shopID int64) (domain.BookingRules, error) {
	override, err := s.loadOverride(ctx, shopID)
	if err != nil {
		return domain.BookingRules{}, err
	}

	return s.effective(shopID, override), nil
}

// Get возвращает действующие правила барбершопа вместе с признаком переопределения
func (s *Service) Get(ctx context.Context, shopID int64) (*models.RulesResponse, error) {
	s.logger.Info("Get: fetching rules for shop=%d", shopID)

	override, err := s.loadOverride(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainRules(shopID, s.effective(shopID, override), override), nil
}

// Update заменяет переопределения правил барбершопа
func (s *Service) Update(ctx context.Context, shopID int64, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Update: updating rules for shop=%d", shopID)

	// 1. Собираем переопределение из запроса
	override := &domain.ShopRules{
		ShopID:                        shopID,
		StartHour:                     req.StartHour,
		EndHour:                       req.EndHour,
		IntervalMinutes:               req.IntervalMinutes,
		SameDayCutoffHour:             req.SameDayCutoffHour,
		SameDayMinAdvanceMinutes:      req.SameDayMinAdvanceMinutes,
		DefaultServiceDurationMinutes: req.DefaultServiceDurationMinutes,
	}
	if len(req.WorkingDays) > 0 {
		days := availability.ResolveWorkingDays(req.WorkingDays)
		override.WorkingDays = &days
	}

	// 2. Проверяем, что правила согласованы поверх базовых
	effective := override.Apply(s.base)
	if err := effective.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	saved, err := s.rulesRepo.Upsert(ctx, override)
	if err != nil {
		s.logger.Error("Update: failed to save rules for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш
	s.invalidate(ctx, "Update", shopID)

	s.logger.Info("Update: rules for shop=%d saved: %s %02d-%02d step=%d",
		shopID, effective.WorkingDays, effective.StartHour, effective.EndHour, effective.IntervalMinutes)
	return models.FromDomainRules(shopID, effective, saved), nil
}

// Reset удаляет переопределения, после чего для барбершопа действуют базовые правила
func (s *Service) Reset(ctx context.Context, shopID int64) error {
	s.logger.Info("Reset: resetting rules for shop=%d", shopID)

	if err := s.rulesRepo.Delete(ctx, shopID); err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("Reset: shop=%d has no custom rules", shopID)
			return ErrRulesNotFound
		}
		s.logger.Error("Reset: failed to delete rules for shop=%d: %v", shopID, err)
		return fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Reset", shopID)

	s.logger.Info("Reset: rules for shop=%d reset to defaults", shopID)
	return nil
}

// loadOverride читает переопределение сначала из кэша, затем из БД. nil - переопределений нет
func (s *Service) loadOverride(ctx context.Context, shopID int64) (*domain.ShopRules, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, shopID)
		switch {
		case err != nil:
			// Недоступный кэш не должен ломать расчёт доступности
			s.metrics.IncRulesCache(cacheError)
			s.logger.Warn("loadOverride: cache read failed for shop=%d: %v", shopID, err)
		case found:
			s.metrics.IncRulesCache(cacheHit)
			return cached, nil
		default:
			s.metrics.IncRulesCache(cacheMiss)
		}
	}

	override, err := s.rulesRepo.GetByShopID(ctx, shopID)
	if err != nil {
		if !errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Error("loadOverride: repository error for shop=%d: %v", shopID, err)
			return nil, fmt.Errorf("%w: loadOverride - repository error: %v", ErrInternal, err)
		}
		override = nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, shopID, override); err != nil {
			s.logger.Warn("loadOverride: cache write failed for shop=%d: %v", shopID, err)
		}
	}

	return override, nil
}

// effective накладывает переопределение на базовые правила
func (s *Service) effective(shopID int64, override *domain.ShopRules) domain.BookingRules {
	rules := override.Apply(s.base)
	if err := rules.Validate(); err != nil {
		// Переопределения валидируются при сохранении, сюда попадаем только при ручной правке БД
		s.logger.Error("effective: stored rules for shop=%d are invalid, using defaults: %v", shopID, err)
		return s.base
	}
	return rules
}

func (s *Service) invalidate(ctx context.Context, op string, shopID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, shopID); err != nil {
		s.logger.Warn("%s: cache invalidation failed for shop=%d: %v", op, shopID, err)
	}
}
