package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/observability"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// UndoWindow is the fixed duration during which a recorded action stays
// reversible. ExpiresAt is stamped once at record time and never recomputed.
const UndoWindow = 25 * time.Hour

// Actor represents the authenticated user performing an admin operation.
type Actor struct {
	ID   uint
	Role string
}

// Typed undo failures, checked in this order by Undo.
var (
	ErrActionNotFound = errors.New("admin action not found")
	ErrUndoForbidden  = errors.New("only administrators may undo actions")
	ErrActionExpired  = errors.New("undo window for this action has lapsed")
	ErrActionConsumed = errors.New("action has already been undone or superseded")
	ErrNoRestorer     = errors.New("no restorer registered for entity type")
)

// EntityRestorer applies the inverse of a tracked mutation inside the undo
// transaction: delete for create, overwrite for update, re-insert for delete.
type EntityRestorer interface {
	Revert(tx *gorm.DB, action models.AdminAction) error
}

// ModelRestorer is the generic restorer for entities whose snapshot is the
// full GORM model and whose identifier is the numeric primary key.
type ModelRestorer[T any] struct{}

// Revert applies the inverse operation for the snapshot carried by the action.
func (ModelRestorer[T]) Revert(tx *gorm.DB, action models.AdminAction) error {
	switch action.Operation {
	case models.OperationCreate:
		id, err := strconv.ParseUint(action.EntityID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entity identifier %q: %w", action.EntityID, err)
		}
		return tx.Delete(new(T), uint(id)).Error
	case models.OperationUpdate:
		var value T
		if err := json.Unmarshal(action.BeforeState, &value); err != nil {
			return fmt.Errorf("decode before state: %w", err)
		}
		return tx.Save(&value).Error
	case models.OperationDelete:
		var value T
		if err := json.Unmarshal(action.BeforeState, &value); err != nil {
			return fmt.Errorf("decode before state: %w", err)
		}
		return tx.Create(&value).Error
	default:
		return fmt.Errorf("unsupported operation %q", action.Operation)
	}
}

// ActionLogService records reversible mutations and applies undo requests.
type ActionLogService interface {
	// NewAction builds a log entry for a tracked mutation, stamped with the
	// undo deadline. The entry is persisted by the tracked repository inside
	// the same transaction as the domain write.
	NewAction(entityType string, op models.Operation, before interface{}, metadata map[string]interface{}, actor Actor) (*models.AdminAction, error)
	List(ctx context.Context, filter repository.AdminActionFilter) (dto.AdminActionListResponse, error)
	Undo(ctx context.Context, actionID uint, actor Actor) (dto.UndoResponse, error)
	RegisterRestorer(entityType string, restorer EntityRestorer)
}

type actionLogService struct {
	repo      repository.AdminActionRepository
	restorers map[string]EntityRestorer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewActionLogService constructs the undo engine.
func NewActionLogService(repo repository.AdminActionRepository, logger zerolog.Logger) ActionLogService {
	return &actionLogService{
		repo:      repo,
		restorers: make(map[string]EntityRestorer),
		logger:    logger.With().Str("component", "action_log_service").Logger(),
		now:       time.Now,
	}
}

func (s *actionLogService) RegisterRestorer(entityType string, restorer EntityRestorer) {
	s.restorers[entityType] = restorer
}

func (s *actionLogService) NewAction(entityType string, op models.Operation, before interface{}, metadata map[string]interface{}, actor Actor) (*models.AdminAction, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unsupported operation %q", op)
	}

	var snapshot datatypes.JSON
	switch op {
	case models.OperationCreate:
		if before != nil {
			return nil, fmt.Errorf("create actions must not carry a before state")
		}
	default:
		if before == nil {
			return nil, fmt.Errorf("%s actions require a before state", op)
		}
		encoded, err := json.Marshal(before)
		if err != nil {
			return nil, fmt.Errorf("encode before state: %w", err)
		}
		snapshot = datatypes.JSON(encoded)
	}

	now := s.now()
	return &models.AdminAction{
		EntityType:  entityType,
		Operation:   op,
		BeforeState: snapshot,
		Metadata:    datatypes.JSONMap(metadata),
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(UndoWindow),
	}, nil
}

func (s *actionLogService) List(ctx context.Context, filter repository.AdminActionFilter) (dto.AdminActionListResponse, error) {
	filter.Page = normalizePage(filter.Page)
	filter.PageSize = clampPageSize(filter.PageSize)

	entries, total, err := s.repo.ListEligible(ctx, filter)
	if err != nil {
		return dto.AdminActionListResponse{}, err
	}

	items := make([]dto.AdminActionResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAdminActionResponse(entry))
	}

	return dto.AdminActionListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *actionLogService) Undo(ctx context.Context, actionID uint, actor Actor) (dto.UndoResponse, error) {
	tracer := otel.Tracer("github.com/TofuAo/Masjid-App-sub001/internal/service/action_log")
	ctx, span := tracer.Start(ctx, "admin_action.undo")
	span.SetAttributes(
		attribute.Int64("undo.action_id", int64(actionID)),
		attribute.Int64("undo.actor_id", int64(actor.ID)),
	)
	defer span.End()

	recordAttempt := func(entityType, outcome string) {
		observability.UndoAttempts().WithLabelValues(entityType, outcome).Inc()
	}

	action, err := s.repo.GetByID(ctx, actionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "not_found")
			recordAttempt("", "not_found")
			return dto.UndoResponse{}, ErrActionNotFound
		}
		span.RecordError(err)
		return dto.UndoResponse{}, err
	}

	if actor.Role != models.RoleAdmin {
		span.SetStatus(codes.Error, "forbidden")
		recordAttempt(action.EntityType, "forbidden")
		return dto.UndoResponse{}, ErrUndoForbidden
	}

	if s.now().After(action.ExpiresAt) {
		span.SetStatus(codes.Error, "expired")
		recordAttempt(action.EntityType, "expired")
		return dto.UndoResponse{}, ErrActionExpired
	}

	if action.Consumed() {
		span.SetStatus(codes.Error, "consumed")
		recordAttempt(action.EntityType, "consumed")
		return dto.UndoResponse{}, ErrActionConsumed
	}

	restorer, ok := s.restorers[action.EntityType]
	if !ok {
		span.SetStatus(codes.Error, "no_restorer")
		recordAttempt(action.EntityType, "no_restorer")
		return dto.UndoResponse{}, fmt.Errorf("%w: %s", ErrNoRestorer, action.EntityType)
	}

	err = s.repo.ConsumeAndRestore(ctx, action.ID, func(tx *gorm.DB) error {
		return restorer.Revert(tx, action)
	})
	if err != nil {
		if errors.Is(err, repository.ErrActionConsumed) {
			span.SetStatus(codes.Error, "consumed")
			recordAttempt(action.EntityType, "consumed")
			return dto.UndoResponse{}, ErrActionConsumed
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "restore_failed")
		recordAttempt(action.EntityType, "restore_failed")
		s.logger.Error().Err(err).Uint("action_id", action.ID).Msg("failed to apply undo")
		return dto.UndoResponse{}, err
	}
	recordAttempt(action.EntityType, "success")

	s.logger.Info().
		Uint("action_id", action.ID).
		Str("entity_type", action.EntityType).
		Str("entity_id", action.EntityID).
		Str("operation", string(action.Operation)).
		Uint("actor_id", actor.ID).
		Msg("admin action undone")

	span.SetAttributes(attribute.String("undo.entity_type", action.EntityType))

	return dto.UndoResponse{
		ActionID:      action.ID,
		EntityType:    action.EntityType,
		EntityID:      action.EntityID,
		Operation:     string(action.Operation),
		RestoredState: json.RawMessage(action.BeforeState),
	}, nil
}
